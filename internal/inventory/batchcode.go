package inventory

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"time"
)

// batch code layout: SB<productID>-<start YYYYMMDD>-<6 hash chars>
const batchCodeHashLen = 6

// GenerateBatchCode derives a stable human-legible code from the product
// id and the production window. Identical inputs always yield the same
// code; the hash suffix keeps codes distinct when windows overlap.
func GenerateBatchCode(productID int64, start, end time.Time) string {
	canonical := fmt.Sprintf("%d|%s|%s",
		productID,
		start.UTC().Format("2006-01-02"),
		end.UTC().Format("2006-01-02"))
	sum := sha256.Sum256([]byte(canonical))
	suffix := base32.StdEncoding.EncodeToString(sum[:])[:batchCodeHashLen]
	return fmt.Sprintf("SB%d-%s-%s", productID, start.UTC().Format("20060102"), suffix)
}
