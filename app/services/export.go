package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prakashraj/godown/config"
	"github.com/prakashraj/godown/pkg/storage"
)

// ExportResult describes where a catalog snapshot landed.
type ExportResult struct {
	Disk  string `json:"disk"`
	Path  string `json:"path"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// ExportCatalog writes the full product list as pretty-printed JSON to
// the named storage disk. The path embeds a UTC timestamp so repeated
// exports never overwrite each other.
func (s *CatalogService) ExportCatalog(ctx context.Context, diskName string) (ExportResult, error) {
	if diskName == "" {
		diskName = config.StorageDefault()
	}
	disk, err := storage.Use(diskName)
	if err != nil {
		return ExportResult{}, err
	}

	products, err := s.store.All(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("services: export catalog: %w", err)
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("services: export catalog: %w", err)
	}

	path := fmt.Sprintf("catalog/export-%s.json", time.Now().UTC().Format("20060102-150405"))
	if err := disk.Put(ctx, path, data); err != nil {
		return ExportResult{}, err
	}

	return ExportResult{
		Disk:  diskName,
		Path:  path,
		URL:   disk.URL(path),
		Count: len(products),
	}, nil
}
