package domain

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// LanguageCache remembers the last target locale each user translated to.
// Entries live for the life of the process.
type LanguageCache struct {
	mu      sync.Mutex
	locales map[snowflake.ID]string
}

// NewLanguageCache creates an empty LanguageCache.
func NewLanguageCache() *LanguageCache {
	return &LanguageCache{
		locales: make(map[snowflake.ID]string),
	}
}

// Get returns the user's last locale.
func (c *LanguageCache) Get(userID snowflake.ID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	locale, ok := c.locales[userID]
	return locale, ok
}

// Set records locale as the user's last locale.
func (c *LanguageCache) Set(userID snowflake.ID, locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.locales[userID] = locale
}

// Len returns the number of users with a cached locale.
func (c *LanguageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.locales)
}
