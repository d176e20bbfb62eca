// Package repository provides per-entity data access over a shared *gorm.DB.
// Lookup misses surface as apperr.NotFound; unexpected store faults as
// apperr.Internal.
package repository

import (
	"github.com/MarcsonSantos/lu-estilo/pkg/config"
)

// Page bounds a list query with offset/limit pagination.
type Page struct {
	Offset int
	Limit  int
}

// NormalizePage applies the configured default and clamps the limit so a
// single request cannot pull an unbounded result set.
func NormalizePage(cfg config.PaginationConfig, offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	return Page{Offset: offset, Limit: limit}
}
