package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes built models by the hash of their training text. With a
// zero TTL every call rebuilds the model.
type Cache struct {
	models *expirable.LRU[string, *Model]
	opts   Options
}

func NewCache(size int, ttl time.Duration, opts Options) *Cache {
	c := &Cache{opts: opts}
	if ttl > 0 {
		if size <= 0 {
			size = 1
		}
		c.models = expirable.NewLRU[string, *Model](size, nil, ttl)
	}
	return c
}

func (c *Cache) Model(text string) (*Model, error) {
	if c.models == nil {
		return Build(text, c.opts)
	}

	sum := sha256.Sum256([]byte(text))
	key := hex.EncodeToString(sum[:])
	if m, ok := c.models.Get(key); ok {
		return m, nil
	}

	start := time.Now()
	m, err := Build(text, c.opts)
	if err != nil {
		return nil, err
	}
	c.models.Add(key, m)
	slog.Debug("[ModelCache] Built and cached model", slog.Duration("elapsed", time.Since(start)))
	return m, nil
}

func (c *Cache) Len() int {
	if c.models == nil {
		return 0
	}
	return c.models.Len()
}

// Generate samples one sentence from the model for text.
func (c *Cache) Generate(text string) (string, error) {
	m, err := c.Model(text)
	if err != nil {
		return "", err
	}
	return m.Sample()
}
