package matcher

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/redis/go-redis/v9"
)

// maxL1Entries bounds the in-process cache.
const maxL1Entries = 1024

// CachedAdvisor memoizes successful scores in memory (L1) and, when a Redis
// client is given, in Redis (L2). Other calls pass through.
type CachedAdvisor struct {
	Advisor
	mu    sync.Mutex
	l1    map[string]cacheEntry
	maxL1 int
	rdb   *redis.Client
	ttl   time.Duration
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewCachedAdvisor wraps adv. rdb may be nil.
func NewCachedAdvisor(adv Advisor, rdb *redis.Client, ttl time.Duration) *CachedAdvisor {
	return &CachedAdvisor{
		Advisor: adv,
		l1:      make(map[string]cacheEntry),
		maxL1:   maxL1Entries,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// cacheKey builds a deterministic key from the advisor name and request.
func cacheKey(name string, req ScoreRequest) string {
	joined := strings.Join([]string{name, req.ResumeText, req.JobDescription, req.JobTitle, req.Company}, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("match:score:%x", hash[:12])
}

// Score returns a cached result when one is fresh, otherwise delegates.
func (c *CachedAdvisor) Score(ctx context.Context, req ScoreRequest) (model.MatchResult, error) {
	key := cacheKey(c.Name(), req)
	if res, ok := c.get(ctx, key); ok {
		return res, nil
	}

	res, err := c.Advisor.Score(ctx, req)
	if err != nil {
		return res, err
	}
	c.set(ctx, key, res)
	return res, nil
}

func (c *CachedAdvisor) get(ctx context.Context, key string) (model.MatchResult, bool) {
	if data, ok := c.load(key, time.Now()); ok {
		var out model.MatchResult
		if json.Unmarshal(data, &out) == nil {
			slog.Debug("match cache: L1 hit", slog.String("key", key))
			return out, true
		}
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var out model.MatchResult
			if json.Unmarshal(data, &out) == nil {
				slog.Debug("match cache: L2 hit", slog.String("key", key))
				c.store(key, data, time.Now())
				return out, true
			}
		}
	}
	return model.MatchResult{}, false
}

func (c *CachedAdvisor) set(ctx context.Context, key string, res model.MatchResult) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	c.store(key, data, time.Now())

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("match cache: redis set failed", slog.Any("error", err))
		}
	}
}

func (c *CachedAdvisor) load(key string, now time.Time) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.l1[key]
	if !ok {
		return nil, false
	}
	if !now.Before(entry.expiresAt) {
		delete(c.l1, key)
		return nil, false
	}
	return entry.data, true
}

func (c *CachedAdvisor) store(key string, data []byte, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.l1[key]; !ok && len(c.l1) >= c.maxL1 {
		c.evictLocked(now)
	}
	c.l1[key] = cacheEntry{data: data, expiresAt: now.Add(c.ttl)}
}

// evictLocked drops every expired entry. When none has expired the entry
// closest to expiry goes instead. c.mu must be held.
func (c *CachedAdvisor) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.l1 {
		if !now.Before(e.expiresAt) {
			delete(c.l1, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	if len(c.l1) >= c.maxL1 && oldestKey != "" {
		delete(c.l1, oldestKey)
	}
}
