package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerSuppressesWithinWindow(t *testing.T) {
	d := NewDebouncer(5 * time.Second)

	assert.False(t, d.ShouldDebounce("promo1"))
	assert.True(t, d.ShouldDebounce("promo1"))
	assert.True(t, d.ShouldDebounce("promo1"))
}

func TestDebouncerIsolatesSlugs(t *testing.T) {
	d := NewDebouncer(5 * time.Second)

	assert.False(t, d.ShouldDebounce("promo1"))
	assert.False(t, d.ShouldDebounce("promo2"))
}

func TestDebouncerAllowsAfterWindow(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	assert.False(t, d.ShouldDebounce("promo1"))
	time.Sleep(70 * time.Millisecond)
	assert.False(t, d.ShouldDebounce("promo1"))
}

func TestDebouncerSuppressionDoesNotExtendWindow(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)

	assert.False(t, d.ShouldDebounce("promo1"))
	time.Sleep(60 * time.Millisecond)
	// Подавленный дубль не сдвигает отметку первого клика
	assert.True(t, d.ShouldDebounce("promo1"))
	time.Sleep(60 * time.Millisecond)
	assert.False(t, d.ShouldDebounce("promo1"))
}

func TestDebouncerSweepRemovesOldEntries(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)

	for i := 0; i < debounceSweepThreshold+1; i++ {
		d.ShouldDebounce(fmt.Sprintf("slug-%d", i))
	}
	assert.Greater(t, d.Size(), debounceSweepThreshold)

	time.Sleep(150 * time.Millisecond)

	d.ShouldDebounce("fresh")
	assert.LessOrEqual(t, d.Size(), 2)
}
