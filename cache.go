package huffman

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// TreeCache memoizes BuildTree for callers that see the same frequency
// tables repeatedly.  Because Trees are immutable, a cached Tree may be
// handed to any number of callers.
//
// A TreeCache is safe for concurrent use by multiple goroutines.
type TreeCache struct {
	mu    sync.Mutex
	cache *tinylfu.T[string, *Tree]
}

// NewTreeCache constructs a TreeCache holding up to size Trees.
func NewTreeCache(size int) *TreeCache {
	if size < 1 {
		size = 1
	}
	return &TreeCache{
		cache: tinylfu.New[string, *Tree](size, size*10, xxhash.Sum64String),
	}
}

// Build returns the Tree for freqs, building it on a miss.  Errors are not
// cached.
func (c *TreeCache) Build(freqs FrequencyTable) (*Tree, error) {
	key := freqs.key()

	c.mu.Lock()
	t, found := c.cache.Get(key)
	c.mu.Unlock()
	if found {
		return t, nil
	}

	t, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(key, t)
	c.mu.Unlock()
	return t, nil
}
