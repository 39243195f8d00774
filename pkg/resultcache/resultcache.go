package resultcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/koding/cache"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/search"
)

type entry struct {
	message []byte
	err     error
}

// Cache memoizes search outcomes, including search.ErrNotFound.
type Cache struct {
	c      *cache.MemoryTTL
	m      sync.Mutex
	closed bool
	gc     bool
	opts   []search.Option
}

func NewCache(ttl time.Duration, gcInterval time.Duration,
	opts ...search.Option) *Cache {
	rc := &Cache{
		c:    cache.NewMemoryWithTTL(ttl),
		opts: opts,
	}
	if gcInterval > 0 {
		rc.c.StartGC(gcInterval)
		rc.gc = true
	}
	return rc
}

func (rc *Cache) Close() {
	rc.m.Lock()
	defer rc.m.Unlock()
	if rc.closed {
		return
	}
	if rc.gc {
		rc.c.StopGC()
	}
	rc.closed = true
}

func key(prefix []byte, checksum string, p crc.Params, missingLength int) string {
	sum := sha256.Sum256(prefix)
	return fmt.Sprintf("%d/%x/%x/%s/%d/%s", p.Width, p.Poly, p.Init,
		checksum, missingLength, hex.EncodeToString(sum[:]))
}

func lookup(c *cache.MemoryTTL, k string) (*entry, bool, error) {
	v, err := c.Get(k)
	if err == cache.ErrNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return v.(*entry), true, nil
}

// Reconstitute returns a cached outcome or runs search.Reconstitute.
// Context errors are never cached.
func (rc *Cache) Reconstitute(ctx context.Context, prefix []byte, checksum string,
	p crc.Params, missingLength int) ([]byte, error) {
	k := key(prefix, checksum, p, missingLength)
	e, ok, err := lookup(rc.c, k)
	if err != nil {
		return nil, err
	} else if ok {
		return e.message, e.err
	}

	rc.m.Lock()
	defer rc.m.Unlock()

	// Another caller may have finished the same search while we waited.
	e, ok, err = lookup(rc.c, k)
	if err != nil {
		return nil, err
	} else if ok {
		return e.message, e.err
	}

	message, err := search.Reconstitute(ctx, prefix, checksum, p, missingLength, rc.opts...)
	if err != nil && err != search.ErrNotFound && err != search.ErrAmbiguous {
		return nil, err
	}

	if rc.closed == false {
		setErr := rc.c.Set(k, &entry{message: message, err: err})
		if setErr != nil {
			return nil, setErr
		}
	}
	return message, err
}
