// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/prakashraj/godown/config"
	"github.com/prakashraj/godown/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// Body reads the whole request body capped at MAX_BODY_BYTES. Returned raw
// so callers can decide between single-document and array decoding (the
// product create endpoint accepts both).
func Body(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	buf, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, err
	}
	return buf, nil
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) on validation failures, (nil, err) on malformed JSON
// or an oversized body.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	body, err := Body(r)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(body, dest); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
