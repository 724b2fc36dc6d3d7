package domain

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Page carries limit/offset pagination parameters from the query string.
type Page struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// Normalize clamps the page to sane bounds: missing or non-positive limits get
// the default, oversized limits get capped, negative offsets become zero.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
