package catalog

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lobstertawar/internal/domain"
	"lobstertawar/internal/dto"
	apperrors "lobstertawar/internal/errors"
	"lobstertawar/internal/infrastructure/backend"
	"lobstertawar/internal/testutil"
)

// Mock implementations

type mockProductClient struct {
	mu                sync.Mutex
	listCalls         int
	createCalls       int
	ListProductsFunc  func(ctx context.Context) ([]domain.Product, error)
	CreateProductFunc func(ctx context.Context, p domain.Product) error
}

func (m *mockProductClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	return m.ListProductsFunc(ctx)
}

func (m *mockProductClient) CreateProduct(ctx context.Context, p domain.Product) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	return m.CreateProductFunc(ctx, p)
}

func (m *mockProductClient) calls() (list, create int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls, m.createCalls
}

func newFakeBackedLoader(t *testing.T) (*Loader, *testutil.Backend) {
	t.Helper()
	fake := testutil.NewBackend(t)
	return NewLoader(backend.NewClient(fake.Config(), zap.NewNop()), zap.NewNop()), fake
}

func ptr[T any](v T) *T { return &v }

// Tests

func TestNewLoader_InitialState(t *testing.T) {
	l := NewLoader(&mockProductClient{}, zap.NewNop())

	state := l.Snapshot()
	assert.Empty(t, state.Products)
	assert.False(t, state.Loading)
	assert.False(t, state.Seeding)
	assert.Equal(t, "", state.Error)
}

func TestLoad_SingleProduct(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	fake.SetProducts(dto.ProductDTO{ID: "1", Name: "A", PricePerKg: 280000, StockKg: ptr(50.0)})

	require.NoError(t, l.Load(context.Background()))

	state := l.Snapshot()
	require.Len(t, state.Products, 1)
	assert.Equal(t, "1", state.Products[0].ID)
	assert.Equal(t, "A", state.Products[0].Name)
	assert.True(t, state.Products[0].PricePerKg.Equal(decimal.NewFromInt(280000)))
	assert.Equal(t, 50.0, state.Products[0].StockKg)
	assert.False(t, state.Loading)
	assert.Equal(t, "", state.Error)
}

func TestLoad_ReplacesInResponseOrder(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	fake.SetProducts(
		dto.ProductDTO{ID: "3", Name: "C"},
		dto.ProductDTO{ID: "1", Name: "A"},
		dto.ProductDTO{ID: "2", Name: "B"},
	)
	require.NoError(t, l.Load(context.Background()))
	require.Len(t, l.Snapshot().Products, 3)

	fake.SetProducts(dto.ProductDTO{ID: "9", Name: "Z"}, dto.ProductDTO{ID: "8", Name: "Y"})
	require.NoError(t, l.Load(context.Background()))

	state := l.Snapshot()
	require.Len(t, state.Products, 2)
	assert.Equal(t, "9", state.Products[0].ID)
	assert.Equal(t, "8", state.Products[1].ID)
}

func TestLoad_LoadingFlagWhileInFlight(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	entered, release := fake.BlockList()
	defer release()

	done := make(chan error, 1)
	go func() { done <- l.Load(context.Background()) }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("list request never reached the backend")
	}
	assert.True(t, l.Snapshot().Loading)

	release()
	require.NoError(t, <-done)
	assert.False(t, l.Snapshot().Loading)
}

func TestLoad_FailureRetainsLastGoodProducts(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	fake.SetProducts(dto.ProductDTO{ID: "1", Name: "A", PricePerKg: 280000})
	require.NoError(t, l.Load(context.Background()))

	fake.FailList(http.StatusInternalServerError)
	err := l.Load(context.Background())
	require.Error(t, err)

	state := l.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, MsgLoadFailed, state.Error)
	require.Len(t, state.Products, 1)
	assert.Equal(t, "1", state.Products[0].ID)
}

func TestLoad_NonSuccessStatusIsAnError(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	fake.FailList(http.StatusNotFound)

	err := l.Load(context.Background())

	_, ok := apperrors.IsUpstreamError(err)
	assert.True(t, ok)
	assert.Equal(t, MsgLoadFailed, l.Snapshot().Error)
}

func TestLoad_ClearsPreviousError(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	fake.FailList(http.StatusBadGateway)
	require.Error(t, l.Load(context.Background()))
	require.Equal(t, MsgLoadFailed, l.Snapshot().Error)

	fake.FailList(0)
	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, "", l.Snapshot().Error)
}

func TestLoad_SupersededResultIsDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls int
	var mu sync.Mutex

	client := &mockProductClient{
		ListProductsFunc: func(ctx context.Context) ([]domain.Product, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			if n == 1 {
				close(firstStarted)
				<-releaseFirst
				return []domain.Product{{ID: "stale"}}, nil
			}
			return []domain.Product{{ID: "fresh"}}, nil
		},
	}
	l := NewLoader(client, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- l.Load(context.Background()) }()
	<-firstStarted

	require.NoError(t, l.Load(context.Background()))
	close(releaseFirst)
	require.NoError(t, <-done)

	state := l.Snapshot()
	require.Len(t, state.Products, 1)
	assert.Equal(t, "fresh", state.Products[0].ID)
	assert.False(t, state.Loading)
}

func TestSnapshot_IsACopy(t *testing.T) {
	client := &mockProductClient{
		ListProductsFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{{ID: "1", Name: "A"}}, nil
		},
	}
	l := NewLoader(client, zap.NewNop())
	require.NoError(t, l.Load(context.Background()))

	state := l.Snapshot()
	state.Products[0].Name = "mutated"

	assert.Equal(t, "A", l.Snapshot().Products[0].Name)
}

func TestSeedSamples_CreatesSequentiallyThenReloads(t *testing.T) {
	l, fake := newFakeBackedLoader(t)

	require.NoError(t, l.SeedSamples(context.Background()))

	reqs := fake.Requests()
	require.Len(t, reqs, 4)
	samples := Samples()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.MethodPost, reqs[i].Method)
		assert.Equal(t, "/api/products", reqs[i].Path)
		assert.Equal(t, samples[i].Grade, reqs[i].Body["grade"])
	}
	assert.Equal(t, http.MethodGet, reqs[3].Method)
	assert.Equal(t, "/api/products", reqs[3].Path)

	state := l.Snapshot()
	assert.Len(t, state.Products, 3)
	assert.False(t, state.Seeding)
	assert.Equal(t, "", state.Error)
}

func TestSeedSamples_ReentrantCallIssuesNoRequests(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	client := &mockProductClient{
		CreateProductFunc: func(ctx context.Context, p domain.Product) error {
			once.Do(func() { close(started) })
			<-release
			return nil
		},
		ListProductsFunc: func(ctx context.Context) ([]domain.Product, error) {
			return Samples(), nil
		},
	}
	l := NewLoader(client, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- l.SeedSamples(context.Background()) }()
	<-started

	assert.True(t, l.Snapshot().Seeding)

	err := l.SeedSamples(context.Background())
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)

	list, create := client.calls()
	assert.Equal(t, 0, list)
	assert.Equal(t, 1, create)

	close(release)
	require.NoError(t, <-done)

	list, create = client.calls()
	assert.Equal(t, 1, list)
	assert.Equal(t, 3, create)
	assert.False(t, l.Snapshot().Seeding)
}

func TestSeedSamples_PartialFailureStopsWithoutReload(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	fake.FailCreateProductOn(2, http.StatusInternalServerError)

	err := l.SeedSamples(context.Background())
	require.Error(t, err)

	reqs := fake.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, http.MethodPost, reqs[1].Method)

	// no rollback of the record created before the failure
	assert.Len(t, fake.Products(), 1)

	state := l.Snapshot()
	assert.Equal(t, MsgSeedFailed, state.Error)
	assert.False(t, state.Seeding)
}

func TestSeedSamples_TransportFailure(t *testing.T) {
	client := &mockProductClient{
		CreateProductFunc: func(ctx context.Context, p domain.Product) error {
			return errors.New("dial tcp: connection refused")
		},
	}
	l := NewLoader(client, zap.NewNop())

	err := l.SeedSamples(context.Background())
	require.Error(t, err)

	list, create := client.calls()
	assert.Equal(t, 0, list)
	assert.Equal(t, 1, create)
	assert.Equal(t, MsgSeedFailed, l.Snapshot().Error)
}

func TestSeedSamples_ReloadFailureReportsLoadError(t *testing.T) {
	l, fake := newFakeBackedLoader(t)
	fake.FailList(http.StatusInternalServerError)

	err := l.SeedSamples(context.Background())
	require.Error(t, err)

	assert.Len(t, fake.Products(), 3)
	assert.Equal(t, MsgLoadFailed, l.Snapshot().Error)
	assert.False(t, l.Snapshot().Seeding)
}

func TestSamples(t *testing.T) {
	samples := Samples()
	require.Len(t, samples, 3)

	assert.Equal(t, "A", samples[0].Grade)
	assert.True(t, samples[0].PricePerKg.Equal(decimal.NewFromInt(280000)))
	assert.Equal(t, 50.0, samples[0].StockKg)
	assert.Equal(t, "B", samples[1].Grade)
	assert.Equal(t, "Lobster Beku (Frozen)", samples[2].Name)
	assert.Equal(t, 120.0, samples[2].StockKg)

	samples[0].Name = "mutated"
	assert.Equal(t, "Lobster Air Tawar Hidup", Samples()[0].Name)
}
