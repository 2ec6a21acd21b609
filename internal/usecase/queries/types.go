package queries

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ValidateLimit clamps a caller-supplied page size into the allowed range.
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
