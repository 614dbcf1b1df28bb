package render

// defaultInternCapacity bounds the fragment pool.
const defaultInternCapacity = 1000

// internPool caches repeated markup fragments (tag boilerplate, attribute
// strings) so re-rendering the same structures reuses one string instance.
// When the pool reaches capacity it is cleared wholesale rather than
// evicted entry by entry; this is an approximate allocation optimization,
// not a correctness-relevant cache.
type internPool struct {
	entries  map[string]string
	capacity int
}

func newInternPool(capacity int) *internPool {
	return &internPool{
		entries:  make(map[string]string),
		capacity: capacity,
	}
}

func (p *internPool) intern(s string) string {
	if cached, ok := p.entries[s]; ok {
		return cached
	}
	if len(p.entries) >= p.capacity {
		p.entries = make(map[string]string)
	}
	p.entries[s] = s
	return s
}

// len reports the current number of pooled fragments.
func (p *internPool) len() int {
	return len(p.entries)
}
