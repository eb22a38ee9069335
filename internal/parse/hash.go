package parse

import (
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"io"
)

// HashSet tracks fingerprints already issued within one parsing batch.
// Callers thread one set through all entries of a batch, in order.
type HashSet map[string]struct{}

// NewHashSet returns an empty per-batch fingerprint set.
func NewHashSet() HashSet { return make(HashSet) }

// EntryHash derives the stable identity key for an entry. The base
// fingerprint depends only on the service key and content, so it survives
// reloads; a collision with an earlier entry in the same batch is
// disambiguated by suffixing the entry's physical line number.
func EntryHash(serviceKey, content string, line int, issued HashSet) string {
	h := fnv.New64a()
	io.WriteString(h, serviceKey)
	h.Write([]byte{0})
	io.WriteString(h, content)
	key := hex.EncodeToString(h.Sum(nil))
	if _, taken := issued[key]; taken {
		key = fmt.Sprintf("%s-%d", key, line)
	}
	issued[key] = struct{}{}
	return key
}
