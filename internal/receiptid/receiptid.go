// Package receiptid generates collision-checked receipt identifiers.
//
// An identifier is {epoch_millis}-{6 random uppercase alphanumerics},
// e.g. 1750680320562-AW0D4V. The random suffix is not cryptographically
// secure; uniqueness is enforced by an existence probe against the store
// with regeneration on collision. Collisions are vanishingly rare given
// the millisecond timestamp prefix, so the retry loop is unbounded.
package receiptid

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

const (
	alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength = 6
)

// Pattern matches well-formed receipt identifiers.
var Pattern = regexp.MustCompile(`^\d+-[A-Z0-9]{6}$`)

// ExistsFunc reports whether a candidate id is already taken. Typically
// backed by the persistence store's existence check.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// New returns a fresh candidate id without checking for collisions.
func New() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), randomSuffix())
}

// Generate returns an id that is unique per the given existence probe,
// regenerating until a free one is found. It does not persist anything;
// the caller inserts the receipt using the returned id.
func Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for {
		id := New()
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check receipt id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
}

func randomSuffix() string {
	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
