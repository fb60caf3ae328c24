package helpers

const (
	// DefaultPage is 1-based.
	DefaultPage = 1
)

// CalculateOffsetLimit converts a 1-based page and a limit to a SQL
// offset/limit pair. A non-positive limit means no cap (limit 0).
func CalculateOffsetLimit(page, limit int) (offset uint64, capped uint64) {
	if limit <= 0 {
		return 0, 0
	}
	if page < DefaultPage {
		page = DefaultPage
	}
	return uint64((page - 1) * limit), uint64(limit)
}
