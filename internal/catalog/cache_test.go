package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int32
	products []Product
	err      error
	delay    time.Duration
}

func (f *fakeSource) FetchProducts(ctx context.Context) ([]Product, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeSource) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakeMirror struct {
	products  []Product
	expiresAt time.Time
	loadErr   error
	storeErr  error

	stored          []Product
	storedExpiresAt time.Time
}

func (f *fakeMirror) Load(ctx context.Context) ([]Product, time.Time, error) {
	if f.loadErr != nil {
		return nil, time.Time{}, f.loadErr
	}
	return f.products, f.expiresAt, nil
}

func (f *fakeMirror) Store(ctx context.Context, products []Product, expiresAt time.Time) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored = products
	f.storedExpiresAt = expiresAt
	return nil
}

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Name: "Ramo de Rosas con Fresas", Price: 400, Stock: 10, ImageURLs: []string{"/flowers/a.jpg"}},
		{ID: "2", Name: "Caja de Rosas", Price: 800, Stock: 5, ImageURLs: []string{"/flowers/b.jpg"}},
	}
}

func TestColdCacheFetchesOnceThenServesFromMemory(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	c := NewCache(src, nil, time.Minute)

	got, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, src.callCount())

	got, err = c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, src.callCount())
}

func TestConcurrentColdCallsCoalesceIntoOneFetch(t *testing.T) {
	src := &fakeSource{products: sampleProducts(), delay: 50 * time.Millisecond}
	c := NewCache(src, nil, time.Minute)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.GetProducts(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, src.callCount())
}

func TestTTLBoundary(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	c := NewCache(src, nil, 5*time.Minute)

	base := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	now := base
	c.nowFunc = func() time.Time { return now }

	_, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, src.callCount())

	// 1ms before expiry: still the cached snapshot
	now = base.Add(5*time.Minute - time.Millisecond)
	_, err = c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.callCount())

	// 1ms after expiry: refetch
	now = base.Add(5*time.Minute + time.Millisecond)
	_, err = c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.callCount())
}

func TestFetchFailureLeavesCacheUnchanged(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	c := NewCache(src, nil, time.Minute)

	_, err := c.GetProducts(context.Background())
	require.Error(t, err)

	// recovery: source comes back, the next call fetches fresh
	src.mu.Lock()
	src.err = nil
	src.products = sampleProducts()
	src.mu.Unlock()

	got, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, src.callCount())
}

func TestLocalOverrideBypassesEverything(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	c := NewCache(src, nil, time.Minute)
	c.local = []Product{{ID: "local-1", Name: "Demo", Stock: 1}}

	got, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "local-1", got[0].ID)
	assert.Equal(t, 0, src.callCount())
}

func TestMirrorHitSkipsRemoteAndRepopulatesMemory(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	mirror := &fakeMirror{
		products:  sampleProducts(),
		expiresAt: time.Now().Add(time.Minute),
	}
	c := NewCache(src, mirror, time.Minute)

	got, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 0, src.callCount())

	// second call is an in-memory hit, not another mirror read
	mirror.loadErr = errors.New("redis down")
	got, err = c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 0, src.callCount())
}

func TestMirrorFailuresAreSwallowed(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	mirror := &fakeMirror{loadErr: errors.New("read quota"), storeErr: errors.New("write quota")}
	c := NewCache(src, mirror, time.Minute)

	got, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, src.callCount())
}

func TestSuccessfulFetchWritesThroughToMirror(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	mirror := &fakeMirror{}
	c := NewCache(src, mirror, time.Minute)

	_, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, mirror.stored, 2)
	assert.False(t, mirror.storedExpiresAt.IsZero())
}

func TestNoSourceNoCacheIsSourceUnavailable(t *testing.T) {
	c := NewCache(nil, nil, time.Minute)

	_, err := c.GetProducts(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestGetProductByID(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	c := NewCache(src, nil, time.Minute)

	p, err := c.GetProductByID(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Caja de Rosas", p.Name)

	p, err = c.GetProductByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}
