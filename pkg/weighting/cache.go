package weighting

import (
	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/ecorouting/pkg/datastructure"
)

type externalityKey struct {
	scope   string
	edge    da.Index
	reverse bool
}

func newExternalityKey(scope string, edge da.Index, reverse bool) externalityKey {
	return externalityKey{scope: scope, edge: edge, reverse: reverse}
}

// ExternalityCache bounded memo of edge externalities. safe for concurrent use, it can be shared by
// weightings of different in-flight searches because externalities are pure functions of the edge.
type ExternalityCache struct {
	cache *lru.Cache[externalityKey, Externality]
}

func NewExternalityCache(size int) (*ExternalityCache, error) {
	c, err := lru.New[externalityKey, Externality](size)
	if err != nil {
		return nil, err
	}
	return &ExternalityCache{cache: c}, nil
}

func (c *ExternalityCache) get(key externalityKey) (Externality, bool) {
	return c.cache.Get(key)
}

func (c *ExternalityCache) add(key externalityKey, ext Externality) {
	c.cache.Add(key, ext)
}

func (c *ExternalityCache) Len() int {
	return c.cache.Len()
}

func (c *ExternalityCache) Purge() {
	c.cache.Purge()
}
