package storage

import (
	"sync"
	"time"
)

// readGrant is one minted presigned read URL.
type readGrant struct {
	key       string
	url       string
	expiresAt time.Time
}

// grantRegistry tracks minted read grants so an unexpired one can be
// reused instead of creating another for the same object. The linear
// scan assumes the grant count stays small (single-instance backend).
type grantRegistry struct {
	mu     sync.Mutex
	grants []readGrant
}

// find returns an unexpired grant URL for key, pruning dead entries on
// the way.
func (g *grantRegistry) find(key string, now time.Time) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	live := g.grants[:0]
	var found string
	for _, gr := range g.grants {
		if !gr.expiresAt.After(now) {
			continue
		}
		live = append(live, gr)
		if found == "" && gr.key == key {
			found = gr.url
		}
	}
	g.grants = live
	return found, found != ""
}

func (g *grantRegistry) add(key, url string, expiresAt time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grants = append(g.grants, readGrant{key: key, url: url, expiresAt: expiresAt})
}
