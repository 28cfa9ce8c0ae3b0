package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/bookzapp/bookz-server/internal/config"
	"github.com/bookzapp/bookz-server/internal/logger"
	"github.com/bookzapp/bookz-server/internal/store/postgres"
)

// StoreHandle wraps the Postgres store with shutdown capability.
type StoreHandle struct {
	*postgres.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore connects to Postgres and applies the schema.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("database ready", "max_conns", cfg.Database.MaxConns)

	return &StoreHandle{Store: db}, nil
}
