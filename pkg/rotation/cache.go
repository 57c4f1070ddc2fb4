package rotation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/arnavshah/noc-rotation-go/pkg/models"
)

// Cache memoizes generated schedules for the life of the process.
// Cached schedules are shared and must be treated as read-only.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*models.Schedule
}

// NewCache creates an empty schedule cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*models.Schedule)}
}

// Get returns the schedule for (roster, start, horizon), generating it on first use
func (c *Cache) Get(roster []models.Worker, start time.Time, horizon int) *models.Schedule {
	key := cacheKey(roster, start, horizon)

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.entries[key]; ok {
		return s
	}
	s := Generate(roster, start, horizon)
	c.entries[key] = s
	return s
}

// Len returns the number of cached schedules
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fingerprint returns a stable digest of a roster's contents and order
func Fingerprint(roster []models.Worker) string {
	h := sha256.New()
	// Worker holds only strings, so encoding cannot fail
	_ = json.NewEncoder(h).Encode(roster)
	return hex.EncodeToString(h.Sum(nil))
}

func cacheKey(roster []models.Worker, start time.Time, horizon int) string {
	return fmt.Sprintf("%s|%s|%d", Fingerprint(roster), civilDate(start).Format(models.DateLayout), horizon)
}
