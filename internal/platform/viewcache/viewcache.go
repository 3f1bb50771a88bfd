package viewcache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/career-coach/internal/platform/cache"
)

const (
	keyPrefix = "view:"
	// RootPath invalidates every cached view.
	RootPath = "/"
)

// Cache keeps rendered per-caller views keyed by logical page path. It plays
// the role of a server-rendered page cache: writes invalidate the paths whose
// output they change.
type Cache struct {
	store *cache.Store[[]byte]
}

func New(ttl time.Duration) *Cache {
	return &Cache{store: cache.NewStore[[]byte](ttl)}
}

func key(path, scope string) string {
	return keyPrefix + normalizePath(path) + "#" + scope
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == RootPath {
		return RootPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(path, "/")
}

// GetOrRender returns the cached view for path and scope, rendering it on a miss.
func (c *Cache) GetOrRender(ctx context.Context, path, scope string, render func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return render(ctx)
	}
	return c.store.GetOrLoad(ctx, key(path, scope), render)
}

// Invalidate drops cached views for path. The root path drops every view,
// mirroring a layout-level revalidation.
func (c *Cache) Invalidate(ctx context.Context, path string) error {
	if c == nil {
		return nil
	}

	path = normalizePath(path)
	if path == RootPath {
		c.store.DeletePrefix(ctx, keyPrefix)
		return nil
	}
	c.store.DeletePrefix(ctx, keyPrefix+path+"#")
	return nil
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.store.Len()
}
