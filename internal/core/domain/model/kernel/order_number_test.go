package kernel_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fulfillment/internal/core/domain/model/kernel"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("should produce the documented format", func(t *testing.T) {
		number := kernel.GenerateOrderNumber(now)

		assert.True(t, kernel.IsValidOrderNumber(number), "got %q", number)
		assert.True(t, strings.HasPrefix(number, "ORD-20250314-"), "got %q", number)
		assert.Len(t, number, len("ORD-20250314-")+8)
	})

	t.Run("should use the UTC date", func(t *testing.T) {
		tz := time.FixedZone("UTC+5", 5*3600)
		lateEvening := time.Date(2025, 3, 14, 2, 30, 0, 0, tz) // 2025-03-13 in UTC

		number := kernel.GenerateOrderNumber(lateEvening)

		assert.True(t, strings.HasPrefix(number, "ORD-20250313-"), "got %q", number)
	})

	t.Run("should produce distinct suffixes", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			number := kernel.GenerateOrderNumber(now)
			assert.False(t, seen[number], "duplicate %q", number)
			seen[number] = true
		}
	})
}

func TestIsValidOrderNumber(t *testing.T) {
	t.Run("should accept valid numbers", func(t *testing.T) {
		assert.True(t, kernel.IsValidOrderNumber("ORD-20250314-1A2B3C4D"))
	})

	t.Run("should reject malformed numbers", func(t *testing.T) {
		invalid := []string{
			"",
			"ORD-20250314",
			"ORD-2025031-1A2B3C4D",
			"ORD-20250314-1a2b3c4d",
			"ord-20250314-1A2B3C4D",
			"ORD-20250314-1A2B3C4",
			"ORD-20250314-1A2B3C4DE",
		}

		for _, s := range invalid {
			assert.False(t, kernel.IsValidOrderNumber(s), "accepted %q", s)
		}
	})
}
