package naming

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// maxCompactTime is 36^7; timestamps at or above it do not fit in 7 base36 chars.
const maxCompactTime = 78364164096

// NewCompactID returns a 12-char lowercase base36 ID ordered by creation time:
// 7 chars of Unix seconds followed by 5 random chars.
func NewCompactID() (string, error) {
	return compactIDAt(time.Now().UTC())
}

func compactIDAt(t time.Time) (string, error) {
	ts := t.Unix()
	if ts < 0 || ts >= maxCompactTime {
		return "", fmt.Errorf("timestamp %d out of range for compact id", ts)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(36*36*36*36*36))
	if err != nil {
		return "", fmt.Errorf("generate random suffix: %w", err)
	}
	return fmt.Sprintf("%07s%05s", strconv.FormatInt(ts, 36), strconv.FormatInt(n.Int64(), 36)), nil
}
