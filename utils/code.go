package utils

import (
	"fmt"
	"time"
)

// GenCustomerCode formats CUS-<year>-<seq>, seq zero-padded to 6 digits.
func GenCustomerCode(seq int64, t time.Time) string {
	return fmt.Sprintf("CUS-%d-%06d", t.Year(), seq)
}
