package assemble

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"
)

const (
	boundaryPrefix   = "_postino_"
	boundaryRandLen  = 64
	boundaryHashLen  = 32
	boundaryAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// processStart is captured once, before the first boundary can be
// generated, and never mutated afterwards. DefaultSource reads it; injected
// sources carry their own start time.
var processStart = time.Now()

// A BoundarySource generates multipart boundary tokens. The zero value is
// not usable; use DefaultSource, or fill in all three fields to pin the
// output in tests.
type BoundarySource struct {
	// Start is the reference timestamp the hash suffix is derived from.
	Start time.Time
	// Now supplies the current time.
	Now func() time.Time
	// Rand supplies the random bytes behind the alphanumeric run.
	Rand io.Reader
}

// DefaultSource returns a BoundarySource backed by the process-start
// timestamp, the wall clock, and crypto/rand.
func DefaultSource() *BoundarySource {
	return &BoundarySource{
		Start: processStart,
		Now:   time.Now,
		Rand:  rand.Reader,
	}
}

// Generate produces a boundary token: a fixed prefix, the caller's tag, 64
// uniformly random alphanumeric characters, and the last 32 hex characters
// of the SHA-384 digest of the microseconds elapsed since Start. Nothing
// scans message bodies for collisions; with 64 random characters over a
// 62-character alphabet a collision is astronomically unlikely rather than
// impossible.
func (s *BoundarySource) Generate(tag string) (string, error) {
	run := make([]byte, boundaryRandLen)
	max := big.NewInt(int64(len(boundaryAlphabet)))
	for i := range run {
		n, err := rand.Int(s.Rand, max)
		if err != nil {
			return "", fmt.Errorf("can't draw boundary randomness: %w", err)
		}
		run[i] = boundaryAlphabet[n.Int64()]
	}

	elapsed := s.Now().Sub(s.Start).Microseconds()
	sum := sha512.Sum384([]byte(strconv.FormatInt(elapsed, 10)))
	digest := hex.EncodeToString(sum[:])

	return boundaryPrefix + tag + "_" + string(run) + digest[len(digest)-boundaryHashLen:], nil
}
