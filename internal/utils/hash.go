package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"sync"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Hash computes a SHA-256 digest over data using a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString returns the hex-encoded SHA-256 digest of data.
func HashString(data string) string {
	return hex.EncodeToString(Hash([]byte(data)))
}

// HashStream feeds everything write produces into a pooled hasher and returns
// the hex-encoded digest. Large snapshots are hashed without building the
// whole serialization in memory.
//
// Example usage:
//
//	digest, err := utils.HashStream(func(w io.Writer) error {
//	    _, err := io.WriteString(w, "a,b\n1,2\n")
//	    return err
//	})
func HashStream(write func(w io.Writer) error) (string, error) {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	if err := write(h); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
