package consumption

import (
	"fmt"
)

// Checker flags implausibly large jumps between consecutive readings.
// A flagged reading is still accepted; the flag only drives logging,
// the published event and a warning in the confirmation message.
type Checker struct {
	spikeThreshold int64
}

// NewChecker creates a new checker with the specified per-period threshold
func NewChecker(spikeThreshold int64) *Checker {
	return &Checker{spikeThreshold: spikeThreshold}
}

// Check compares a new reading against the counter's previous one.
// A nil previous value means the first ever reading, which is never flagged.
func (c *Checker) Check(value int64, previous *int64) (bool, string) {
	if previous == nil || c.spikeThreshold <= 0 {
		return false, ""
	}

	increase := value - *previous
	if increase > c.spikeThreshold {
		return true, fmt.Sprintf("consumption jump of %d exceeds threshold %d", increase, c.spikeThreshold)
	}

	return false, ""
}
