package pkgio

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Checksum computes I6's deterministic digest across a canonicalized
// enumeration of archive entries, excluding the checksum entry itself: sort
// entry names, then hash each name and its content in sequence, each
// followed by a NUL separator byte.
// Mirrors the "hash over a deterministic byte stream, store the digest as a
// dedicated trailer entry" shape used elsewhere in the example pack for
// archive integrity trailers.
func Checksum(entries map[string][]byte) string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		if name == entryChecksum {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(entries[name])
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
