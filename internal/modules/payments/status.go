package payments

import "strings"

type Status string

const (
	StatusProcessing Status = "processing"
	StatusConfirmed  Status = "confirmed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

// ParseStatus maps a status name onto the closed enumeration. Unrecognized
// names are a caller error, never a silent fallback.
func ParseStatus(name string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(name))) {
	case StatusProcessing:
		return StatusProcessing, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusFailed:
		return StatusFailed, nil
	case StatusRefunded:
		return StatusRefunded, nil
	default:
		return "", ErrUnknownStatus
	}
}
