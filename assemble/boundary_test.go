package assemble

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

// zeroReader hands out an endless run of zero bytes so tests can pin the
// random component of a boundary.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestGenerateStructure(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := &BoundarySource{
		Start: start,
		Now: func() time.Time {
			return start.Add(1234 * time.Microsecond)
		},
		Rand: zeroReader{},
	}

	b, err := src.Generate("main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Zero bytes always draw the first character of the alphabet.
	wantRun := strings.Repeat("A", boundaryRandLen)
	sum := sha512.Sum384([]byte("1234"))
	digest := hex.EncodeToString(sum[:])
	wantSuffix := digest[len(digest)-boundaryHashLen:]

	want := boundaryPrefix + "main_" + wantRun + wantSuffix
	if b != want {
		t.Errorf("wanted boundary %q but got %q", want, b)
	}
	if len(b) != len(boundaryPrefix)+len("main_")+boundaryRandLen+boundaryHashLen {
		t.Errorf("unexpected boundary length %v", len(b))
	}
}

func TestGenerateSuffixIsLowercaseHex(t *testing.T) {
	src := DefaultSource()
	b, err := src.Generate("alt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	suffix := b[len(b)-boundaryHashLen:]
	for i := 0; i < len(suffix); i++ {
		c := suffix[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("suffix byte %q in %q is not lowercase hex", c, suffix)
		}
	}
}

// Uniqueness is probabilistic, not absolute: this exercises enough
// generations that a broken randomness source would show up immediately.
func TestGenerateUniqueness(t *testing.T) {
	src := DefaultSource()
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		b, err := src.Generate("main")
		if err != nil {
			t.Fatalf("unexpected error on generation %v: %v", i, err)
		}
		if _, ok := seen[b]; ok {
			t.Fatalf("boundary %q repeated after %v generations", b, i)
		}
		seen[b] = struct{}{}
	}
}

func TestGenerateSameCallPairDiffers(t *testing.T) {
	src := DefaultSource()
	for i := 0; i < 50; i++ {
		main, err := src.Generate("main")
		if err != nil {
			t.Fatal(err)
		}
		alt, err := src.Generate("alt")
		if err != nil {
			t.Fatal(err)
		}
		if main == alt {
			t.Fatalf("main and alt boundaries collided: %q", main)
		}
	}
}
