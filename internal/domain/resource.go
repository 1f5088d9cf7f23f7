package domain

import (
	"fmt"
	"strings"
)

type ResourceID string

// Resource is one server row of the order overview. NeedsRenewal is true when
// the row does NOT show the "extension possible from" marker.
type Resource struct {
	ID           ResourceID
	NeedsRenewal bool
}

type ResourceOutcome string

const (
	OutcomeRenewed      ResourceOutcome = "renewed"
	OutcomeFailed       ResourceOutcome = "failed"
	OutcomeNotDue       ResourceOutcome = "not_due"
	OutcomeDuplicate    ResourceOutcome = "duplicate"
	OutcomeVerifyFailed ResourceOutcome = "verify_failed"
)

func (o ResourceOutcome) Valid() bool {
	switch o {
	case OutcomeRenewed, OutcomeFailed, OutcomeNotDue, OutcomeDuplicate, OutcomeVerifyFailed:
		return true
	default:
		return false
	}
}

type PIN string

const pinLength = 6

func ParsePIN(raw string) (PIN, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != pinLength {
		return "", fmt.Errorf("%w: want %d digits, got %q", ErrMalformedPIN, pinLength, trimmed)
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q is not numeric", ErrMalformedPIN, trimmed)
		}
	}

	return PIN(trimmed), nil
}

type RenewalToken string
