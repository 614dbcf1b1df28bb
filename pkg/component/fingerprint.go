package component

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"sort"
)

// Fingerprint returns a stable cache key covering the component's type,
// instance identity, props and state. Two calls return the same key until
// an effective mutation lands; after one the key changes, so stale render
// cache entries fall out naturally.
func (c *Component) Fingerprint() string {
	h := fnv.New64a()
	io.WriteString(h, c.typeName)
	h.Write([]byte{0})
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], c.id)
	h.Write(buf[:])
	hashMap(h, c.props)
	hashMap(h, c.state)
	return fmt.Sprintf("%s:%d:%016x", c.typeName, c.id, h.Sum64())
}

// hashMap folds a map into the hash in sorted key order so iteration order
// never leaks into the fingerprint.
func hashMap(h io.Writer, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		io.WriteString(h, k)
		h.Write([]byte{1})
		fmt.Fprintf(h, "%v", m[k])
		h.Write([]byte{2})
	}
}
