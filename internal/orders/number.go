package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	orderNumberPrefix  = "ORD"
	orderSuffixLength  = 9
	orderSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOrderNumber produces an `ORD-<epoch millis>-<9-char suffix>` number.
// Not guaranteed globally unique; the timestamp plus random suffix makes
// collisions negligible for storefront volumes.
func NewOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, orderSuffixLength)
	max := big.NewInt(int64(len(orderSuffixCharset)))
	for i := range suffix {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating order number: %w", err)
		}
		suffix[i] = orderSuffixCharset[idx.Int64()]
	}
	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, now.UnixMilli(), string(suffix)), nil
}
