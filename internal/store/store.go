package store

import (
	"context"
	"fmt"

	"meal-planner/internal/core/grocery"
	"meal-planner/internal/infrastructure/config"
)

// Store 儲存層：grocery.Repository 加上連線管理
type Store interface {
	grocery.Repository
	Ping(ctx context.Context) error
	Close() error
}

// New 依 database.driver 建立儲存層
func New(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "postgres":
		pg, err := NewPostgresStore(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
