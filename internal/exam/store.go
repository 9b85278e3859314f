package exam

import "errors"

// Sentinel errors so handlers can map store failures to distinct statuses.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid")
)

const dateLayout = "2006-01-02"

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
