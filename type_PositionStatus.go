package tzero

import "fmt"

// PositionStatus is the lifecycle state of a position.
type PositionStatus int

const (
	// Active positions trade normally.
	Active PositionStatus = iota
	// Frozen positions are administratively locked and report no sellable volume.
	Frozen
	// Closed is terminal; only virtual positions reach it.
	Closed
)

func (s PositionStatus) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Frozen:
		return "FROZEN"
	case Closed:
		return "CLOSED"
	default:
		return "unknown"
	}
}

// ParsePositionStatus parses a string into a PositionStatus.
func ParsePositionStatus(s string) (PositionStatus, error) {
	switch s {
	case "ACTIVE":
		return Active, nil
	case "FROZEN":
		return Frozen, nil
	case "CLOSED":
		return Closed, nil
	default:
		return 0, fmt.Errorf("unknown position status: %q", s)
	}
}
