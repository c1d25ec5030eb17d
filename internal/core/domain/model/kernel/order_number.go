package kernel

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// orderNumberPattern describes the stable external format of an order number:
// "ORD-" + 8-digit date + "-" + 8 uppercase alphanumeric characters.
var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

// GenerateOrderNumber produces a human-readable order number of the form
// ORD-YYYYMMDD-XXXXXXXX, where the suffix is taken from a random UUID.
// The number is a probabilistic identifier: collisions are negligible but
// not ruled out, and no uniqueness check against storage is performed.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}

// IsValidOrderNumber reports whether s matches the external order-number contract.
func IsValidOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}
