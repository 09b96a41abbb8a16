package models

import (
	"math/rand/v2"
	"time"
)

const docNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateDocNumber creates a document number like PO20260830-X4T9.
// Uniqueness is ultimately guaranteed by the unique index on the column.
func generateDocNumber(prefix string) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = docNumberCharset[rand.IntN(len(docNumberCharset))]
	}
	return prefix + time.Now().Format("20060102") + "-" + string(suffix)
}
