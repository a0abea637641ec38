package consumption_test

import (
	"testing"

	"github.com/okarpenko/water-meter-bot/internal/consumption"
)

const testSpikeThreshold = 100

func TestCheck_FirstReadingNeverFlagged(t *testing.T) {
	checker := consumption.NewChecker(testSpikeThreshold)

	flagged, reason := checker.Check(5000, nil)

	if flagged {
		t.Errorf("Expected no flag for a first reading, got: %s", reason)
	}
}

func TestCheck_NormalIncrease(t *testing.T) {
	checker := consumption.NewChecker(testSpikeThreshold)

	previous := int64(1200)
	flagged, reason := checker.Check(1230, &previous)

	if flagged {
		t.Errorf("Expected no flag for a normal increase, got: %s", reason)
	}
}

func TestCheck_SpikeFlagged(t *testing.T) {
	checker := consumption.NewChecker(testSpikeThreshold)

	previous := int64(1200)
	flagged, reason := checker.Check(1500, &previous)

	if !flagged {
		t.Error("Expected flag for an increase above the threshold")
	}
	if reason == "" {
		t.Error("Expected a reason for the flagged reading")
	}
}

func TestCheck_IncreaseEqualToThreshold(t *testing.T) {
	checker := consumption.NewChecker(testSpikeThreshold)

	previous := int64(1200)
	flagged, _ := checker.Check(1300, &previous)

	if flagged {
		t.Error("Expected no flag for an increase exactly at the threshold")
	}
}

func TestCheck_DisabledThreshold(t *testing.T) {
	checker := consumption.NewChecker(0)

	previous := int64(0)
	flagged, _ := checker.Check(1000000, &previous)

	if flagged {
		t.Error("Expected no flag when the threshold is disabled")
	}
}
