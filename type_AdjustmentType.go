package tzero

import "fmt"

// AdjustmentType classifies a corporate action affecting the ledger.
type AdjustmentType int

const (
	// Dividend is a cash payout per share. It never touches the factor.
	Dividend AdjustmentType = iota
	// RightsIssue offers new shares at a preferential price.
	RightsIssue
	// BonusShare grants free shares per held share.
	BonusShare
	// Split multiplies the share count.
	Split
	// ReverseSplit consolidates shares.
	ReverseSplit
	// Special covers one-off cash adjustments outside the formulas.
	Special
)

func (t AdjustmentType) String() string {
	switch t {
	case Dividend:
		return "dividend"
	case RightsIssue:
		return "rights_issue"
	case BonusShare:
		return "bonus_share"
	case Split:
		return "split"
	case ReverseSplit:
		return "reverse_split"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// ParseAdjustmentType parses a string into an AdjustmentType.
func ParseAdjustmentType(s string) (AdjustmentType, error) {
	switch s {
	case "dividend":
		return Dividend, nil
	case "rights_issue":
		return RightsIssue, nil
	case "bonus_share":
		return BonusShare, nil
	case "split":
		return Split, nil
	case "reverse_split":
		return ReverseSplit, nil
	case "special":
		return Special, nil
	default:
		return 0, fmt.Errorf("unknown adjustment type: %q", s)
	}
}
