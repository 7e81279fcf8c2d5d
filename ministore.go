// Package ministore wires the storefront core together: the product
// catalog client, the cart store and the local-storage-backed mock
// backend (accounts plus order log). It is a library; the rendering
// layer that calls it lives elsewhere.
package ministore

import (
	"fmt"
	"io"

	"ministore/config"
	"ministore/internal/account"
	"ministore/internal/cart"
	"ministore/internal/catalog"
	"ministore/internal/checkout"
	"ministore/internal/order"
	"ministore/internal/pricing"
	"ministore/internal/storage"
	"ministore/internal/util"
)

// App is the assembled storefront core.
type App struct {
	Catalog  *catalog.Client
	Cart     *cart.Store
	Accounts *account.Service
	Orders   *order.Service
	Checkout *checkout.Service

	store storage.Store
}

// New builds an App from configuration: picks the storage backend,
// loads any persisted cart and wires the services together.
func New(cfg *config.Config) (*App, error) {
	if err := util.InitLogger(cfg.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := newStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	policy, err := pricing.NewPolicy(
		cfg.Pricing.FreeShippingThreshold,
		cfg.Pricing.ShippingFee,
		cfg.Pricing.TaxRate,
	)
	if err != nil {
		return nil, err
	}

	cartStore := cart.New(store, cfg.Cart.FlushDebounce)
	accounts := account.NewService(store, cfg.Mock.Latency)
	orders := order.NewService(store, cfg.Mock.Latency)

	return &App{
		Catalog:  catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout),
		Cart:     cartStore,
		Accounts: accounts,
		Orders:   orders,
		Checkout: checkout.NewService(cartStore, accounts, orders, policy),
		store:    store,
	}, nil
}

func newStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "file":
		return storage.NewFileStore(cfg.Dir)
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		return storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Close flushes the cart and releases the storage backend.
func (a *App) Close() error {
	err := a.Cart.Close()
	if closer, ok := a.store.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	util.SyncLogger()
	return err
}
