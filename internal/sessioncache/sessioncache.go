// Package sessioncache keeps a visitor's rank cache in their Fiber session.
package sessioncache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"github.com/AniruddhGohil/serp-checker/internal/rank"
)

// Key is the session key holding the JSON-encoded cache.
const Key = "rank_cache"

// ErrNoSession is returned when the session middleware is not installed.
var ErrNoSession = errors.New("session not available")

// Load returns the cache stored in the session, or an empty one.
// A corrupt value is discarded rather than failing the request.
func Load(c fiber.Ctx) (*rank.Cache, error) {
	sess := session.FromContext(c)
	if sess == nil {
		return nil, ErrNoSession
	}

	cache := rank.NewCache()
	raw, ok := sess.Get(Key).(string)
	if !ok || raw == "" {
		return cache, nil
	}
	if err := json.Unmarshal([]byte(raw), cache); err != nil {
		sess.Delete(Key)
		return rank.NewCache(), nil
	}
	return cache, nil
}

// Save writes cache back to the session.
func Save(c fiber.Ctx, cache *rank.Cache) error {
	sess := session.FromContext(c)
	if sess == nil {
		return ErrNoSession
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("encode rank cache: %w", err)
	}
	sess.Set(Key, string(data))
	return nil
}

// Clear removes the cache from the session.
func Clear(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return ErrNoSession
	}
	sess.Delete(Key)
	return nil
}
