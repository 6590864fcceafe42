package admin

import (
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/seed"
)

// MaxPinned is the number of posts that may be pinned at the same time.
const MaxPinned = 3

// ApplyPinning enforces the pin capacity before candidate becomes pinned.
// When the cap is already reached by other posts it either unpins the
// least-recently-updated pinned post (autoEvict) or rejects with a capacity
// error and changes nothing.
//
// The create path always passes autoEvict=true: bulk imports must never be
// rejected over pin bookkeeping. The update path passes the caller's explicit
// opt-in. That asymmetry is deliberate.
func ApplyPinning(posts []seed.Post, candidateID string, autoEvict bool) ([]seed.Post, error) {
	pinned := 0
	for _, p := range posts {
		if p.Pinned && p.ID != candidateID {
			pinned++
		}
	}
	if pinned < MaxPinned {
		return posts, nil
	}
	if !autoEvict {
		return nil, errors.Capacity(MaxPinned)
	}

	evict := -1
	for i, p := range posts {
		if !p.Pinned || p.ID == candidateID {
			continue
		}
		if evict == -1 || pinTimestamp(posts[i]) < pinTimestamp(posts[evict]) {
			evict = i
		}
	}
	if evict >= 0 {
		posts[evict].Pinned = false
	}
	return posts, nil
}

// pinTimestamp orders pinned posts for eviction: updated_at, falling back to
// created_at, then the empty string (which sorts first and is evicted first).
func pinTimestamp(p seed.Post) string {
	if p.UpdatedAt != "" {
		return p.UpdatedAt
	}
	return p.CreatedAt
}
