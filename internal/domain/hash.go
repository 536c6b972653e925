package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	orderHashLen    = 20
	itemsSummaryMax = 500
)

// OrderHash digests the ordered (bookId, quantity) pairs plus the purchasing
// user id into a short hex string stored in processor metadata. It detects
// drift between the quoted cart and the confirmed one; it is not a security
// boundary.
func OrderHash(items []CartItem, userID uint64) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%d%d", it.BookID, it.Quantity)
	}
	fmt.Fprintf(&b, "%d", userID)
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:orderHashLen]
}

// ItemsSummary renders "bookId:quantity" pairs comma-joined for processor
// metadata, truncated to the processor's 500 character metadata value limit.
func ItemsSummary(items []CartItem) string {
	pairs := make([]string, 0, len(items))
	for _, it := range items {
		pairs = append(pairs, fmt.Sprintf("%d:%d", it.BookID, it.Quantity))
	}
	s := strings.Join(pairs, ",")
	if len(s) > itemsSummaryMax {
		s = s[:itemsSummaryMax-3] + "..."
	}
	return s
}
