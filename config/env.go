package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "godown"
	defaultRedisAddr     = "localhost:6379"
	defaultJWTSecret     = "change-me-in-production"
	defaultAppPort       = "3000"
	defaultGRPCPort      = "3001"
	defaultAppEnv        = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env (both optional) over the built-in
// defaults. Safe to call from every getter; the work happens once.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGO_URI":      defaultMongoURI,
		"MONGO_USER":     "",
		"MONGO_PASS":     "",
		"MONGO_DB":       defaultMongoDatabase,
		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
		"JWT_SECRET":     defaultJWTSecret,
		"APP_PORT":       defaultAppPort,
		"GRPC_PORT":      defaultGRPCPort,
		"APP_ENV":        defaultAppEnv,
	}
}

// ── Mongo ────────────────────────────────────────────────────────────────────

func MongoURI() string      { _ = Load(); return get("MONGO_URI", defaultMongoURI) }
func MongoUser() string     { _ = Load(); return get("MONGO_USER", "") }
func MongoPassword() string { _ = Load(); return get("MONGO_PASS", "") }
func MongoDatabase() string { _ = Load(); return get("MONGO_DB", defaultMongoDatabase) }

// LogCollection names the collection the async Mongo log sink writes to.
// Empty (the default) disables the sink entirely.
func LogCollection() string { _ = Load(); return get("LOG_COLLECTION", "") }

// ── Redis ────────────────────────────────────────────────────────────────────

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

// ── App ──────────────────────────────────────────────────────────────────────

func AppPort() string  { _ = Load(); return get("APP_PORT", defaultAppPort) }
func GRPCPort() string { _ = Load(); return get("GRPC_PORT", defaultGRPCPort) }
func AppEnv() string   { _ = Load(); return get("APP_ENV", defaultAppEnv) }

// ── Auth ─────────────────────────────────────────────────────────────────────

func JWTSecret() string { _ = Load(); return get("JWT_SECRET", defaultJWTSecret) }

// AdminPasswordHash is the bcrypt hash checked by `godown token`.
func AdminPasswordHash() string { _ = Load(); return get("ADMIN_PASSWORD_HASH", "") }

// AuthRequired gates the mutating /api/products routes behind a bearer token.
// Off by default so the public API contract stays untouched.
func AuthRequired() bool {
	_ = Load()
	v, err := strconv.ParseBool(get("AUTH_REQUIRED", "false"))
	return err == nil && v
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", "storage") }

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }

// ── Plumbing ─────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
