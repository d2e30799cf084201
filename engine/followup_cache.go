package engine

import (
	"slices"
	"strings"
	"sync"

	"github.com/tymeless/legacychat/internal/stringutils"
)

const (
	questionCacheMaxEntries = 50
	questionCacheKeyLen     = 100
)

// QuestionCache is a process-wide bounded cache of follow-up question sets,
// keyed by a normalized prefix of the reply they were derived from. When the
// cache is full the oldest inserted entry is evicted. Safe for concurrent use
// by independent sessions.
type QuestionCache struct {
	mu      sync.Mutex
	entries map[string][]string
	order   []string
}

func NewQuestionCache() *QuestionCache {
	return &QuestionCache{
		entries: make(map[string][]string),
	}
}

// CacheKey derives the lookup key for a reply text: first 100 characters,
// lower-cased, with runs of whitespace collapsed to single spaces.
func CacheKey(responseText string) string {
	if len(responseText) > questionCacheKeyLen {
		responseText = responseText[:questionCacheKeyLen]
	}
	return stringutils.CollapseWhitespace(strings.ToLower(responseText))
}

func (c *QuestionCache) Get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	questions, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(questions), true
}

func (c *QuestionCache) Put(key string, questions []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = slices.Clone(questions)

	if len(c.entries) > questionCacheMaxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *QuestionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
