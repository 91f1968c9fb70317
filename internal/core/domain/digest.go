package domain

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest is a fingerprint produced by hashing task identity data.
// It is rendered as a 16 hex-character string, matching the format the
// build-cache hasher in the corpus uses for content digests.
type Digest string

// digestOf hashes the given strings in order, separated by a NUL byte so
// that ("ab", "c") and ("a", "bc") never collide.
func digestOf(parts ...string) Digest {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	return Digest(fmt.Sprintf("%016x", h.Sum64()))
}

// SubtreeSHA computes the digest summarizing a task's identity and the
// sorted digests of its children. Children are sorted by id before
// hashing so the result is deterministic under canonical child ordering.
func SubtreeSHA(id TaskID, childSubtreeSHAs map[TaskID]Digest) Digest {
	children := make([]TaskID, 0, len(childSubtreeSHAs))
	for child := range childSubtreeSHAs {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].String() < children[j].String()
	})

	parts := make([]string, 0, 1+len(children)*2)
	parts = append(parts, id.String())
	for _, child := range children {
		parts = append(parts, child.String(), string(childSubtreeSHAs[child]))
	}
	return digestOf(parts...)
}

// TaskVersion computes the digest of (generation, subtree_sha). Any change
// to either input invalidates an in-flight execution bound to the prior
// version.
func TaskVersion(generation uint64, subtreeSHA Digest) Digest {
	return digestOf(strconv.FormatUint(generation, 10), string(subtreeSHA))
}
