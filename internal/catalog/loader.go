package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"lobstertawar/internal/domain"
	apperrors "lobstertawar/internal/errors"
)

// User-facing messages. Technical detail goes to the log only.
const (
	MsgLoadFailed = "Gagal memuat produk"
	MsgSeedFailed = "Gagal menambahkan data contoh"
)

type ProductClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) error
}

// Loader keeps the page's copy of the product catalog. Network calls run
// without holding the lock; the lock only guards state transitions.
type Loader struct {
	client  ProductClient
	samples []domain.Product
	logger  *zap.Logger

	mu         sync.Mutex
	products   []domain.Product
	loading    bool
	errMsg     string
	seeding    bool
	generation uint64
}

func NewLoader(client ProductClient, logger *zap.Logger) *Loader {
	return &Loader{
		client:  client,
		samples: Samples(),
		logger:  logger,
	}
}

// Load fetches the whole catalog and replaces the held list with it. On
// failure the previous list is kept and Error carries MsgLoadFailed. When
// loads overlap only the most recent one publishes its outcome.
func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.loading = true
	l.errMsg = ""
	l.mu.Unlock()

	products, err := l.client.ListProducts(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		l.logger.Debug("discarding superseded catalog load", zap.Uint64("generation", gen))
		return err
	}

	l.loading = false
	if err != nil {
		l.errMsg = MsgLoadFailed
		l.logger.Error("loading catalog failed", zap.Error(err))
		return err
	}

	l.products = append([]domain.Product(nil), products...)
	l.logger.Info("catalog loaded", zap.Int("count", len(products)))
	return nil
}

// SeedSamples creates every sample record one after another, then reloads.
// The first failed creation stops the run; records already created stay.
func (l *Loader) SeedSamples(ctx context.Context) error {
	l.mu.Lock()
	if l.seeding {
		l.mu.Unlock()
		return apperrors.NewConflictError("seeding already in progress")
	}
	l.seeding = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.seeding = false
		l.mu.Unlock()
	}()

	for i, sample := range l.samples {
		if err := l.client.CreateProduct(ctx, sample); err != nil {
			l.mu.Lock()
			l.errMsg = MsgSeedFailed
			l.mu.Unlock()

			l.logger.Error("seeding sample failed",
				zap.Int("index", i),
				zap.Int("created", i),
				zap.Error(err),
			)
			return fmt.Errorf("seeding sample %d of %d: %w", i+1, len(l.samples), err)
		}
	}

	l.logger.Info("sample products created", zap.Int("count", len(l.samples)))
	return l.Load(ctx)
}

func (l *Loader) Snapshot() domain.CatalogState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return domain.CatalogState{
		Products: append([]domain.Product(nil), l.products...),
		Loading:  l.loading,
		Error:    l.errMsg,
		Seeding:  l.seeding,
	}
}
