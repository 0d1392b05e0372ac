package spectral

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quantitiesComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spectral_quantities_computed_total",
		Help: "Spectral quantities generated, one per point count",
	}, []string{"basis", "quadrature", "quantity"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spectral_cache_lookups_total",
		Help: "Lookups served by the spectral quantity caches",
	}, []string{"basis", "quadrature", "quantity"})
)

// Cache holds one value per point count in [min, max]. The whole range is
// generated on the first Get, guarded by a sync.Once, and the values are never
// replaced afterward, so every later Get returns the same instance without
// locking. Generators may call Get on other caches but must not recurse into
// their own cache.
type Cache[T any] struct {
	min, max int
	generate func(n int) T
	once     sync.Once
	data     []T
	computed prometheus.Counter
	lookups  prometheus.Counter
}

func NewCache[T any](min, max int, generate func(n int) T) *Cache[T] {
	if min < 1 || max < min {
		panic(fmt.Errorf("invalid cache range [%d, %d]", min, max))
	}
	return &Cache[T]{
		min:      min,
		max:      max,
		generate: generate,
	}
}

func newOperatorCache[T any](b Basis, q Quadrature, quantity string, generate func(n int) T) (c *Cache[T]) {
	c = NewCache(MinimumNumberOfPoints(b, q), MaximumNumberOfPoints(b), generate)
	c.computed = quantitiesComputed.WithLabelValues(b.String(), q.String(), quantity)
	c.lookups = cacheLookups.WithLabelValues(b.String(), q.String(), quantity)
	return
}

func (c *Cache[T]) Get(n int) T {
	if n < c.min || n > c.max {
		panic(fmt.Errorf("number of points %d is outside of the cached range [%d, %d]", n, c.min, c.max))
	}
	c.once.Do(c.fill)
	if c.lookups != nil {
		c.lookups.Inc()
	}
	return c.data[n-c.min]
}

func (c *Cache[T]) Range() (min, max int) { return c.min, c.max }

func (c *Cache[T]) fill() {
	data := make([]T, c.max-c.min+1)
	for n := c.min; n <= c.max; n++ {
		data[n-c.min] = c.generate(n)
		if c.computed != nil {
			c.computed.Inc()
		}
	}
	c.data = data
}
