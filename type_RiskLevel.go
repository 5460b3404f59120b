package tzero

import "fmt"

// RiskLevel grades an alert.
type RiskLevel int

const (
	// RiskInfo is informational; trading continues.
	RiskInfo RiskLevel = iota
	// RiskWarning should be looked at; trading continues.
	RiskWarning
	// RiskError blocks further trading until resolved.
	RiskError
)

func (l RiskLevel) String() string {
	switch l {
	case RiskInfo:
		return "INFO"
	case RiskWarning:
		return "WARNING"
	case RiskError:
		return "ERROR"
	default:
		return "unknown"
	}
}

// ParseRiskLevel parses a string into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "INFO":
		return RiskInfo, nil
	case "WARNING":
		return RiskWarning, nil
	case "ERROR":
		return RiskError, nil
	default:
		return 0, fmt.Errorf("unknown risk level: %q", s)
	}
}
