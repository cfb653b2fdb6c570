package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/matchpoint-club/field-schedule-sync/internal/config"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/out"
)

// Длительность слота у площадки меняется редко, но читается на каждом
// запуске синхронизации. TTL страхует от правок в обход событий.
const fieldEntryTTL = 30 * time.Minute

type fieldCacheEntry struct {
	field     domain.Field
	timestamp time.Time
}

type FieldCacheAdapter struct {
	cache  *lru.Cache[int64, *fieldCacheEntry]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewFieldCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*FieldCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	fieldsCache, err := lru.New[int64, *fieldCacheEntry](cfg.Cache.FieldsSize)
	if err != nil {
		logger.Error("cache.fields.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.FieldsSize,
		})
		return nil, err
	}

	return &FieldCacheAdapter{
		cache:  fieldsCache,
		logger: logger.WithModule("FieldCacheAdapter"),
	}, nil
}

func (c *FieldCacheAdapter) GetField(ctx context.Context, fieldID int64) (*domain.Field, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(fieldID)
	if !exists {
		c.logger.Debug("cache.fields.get.miss", out.LogFields{
			"fieldId": fieldID,
		})
		return nil, false
	}

	if time.Since(entry.timestamp) > fieldEntryTTL {
		c.logger.Debug("cache.fields.get.expired", out.LogFields{
			"fieldId": fieldID,
		})
		return nil, false
	}

	c.logger.Debug("cache.fields.get.hit", out.LogFields{
		"fieldId": fieldID,
	})

	field := entry.field
	return &field, true
}

func (c *FieldCacheAdapter) StoreField(ctx context.Context, field domain.Field) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.fields.store", out.LogFields{
		"fieldId": field.ID,
	})

	c.cache.Add(field.ID, &fieldCacheEntry{
		field:     field,
		timestamp: time.Now(),
	})
}

func (c *FieldCacheAdapter) InvalidateField(ctx context.Context, fieldID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.fields.invalidate", out.LogFields{
		"fieldId": fieldID,
	})

	c.cache.Remove(fieldID)
}
