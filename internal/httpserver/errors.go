package httpserver

const (
	ErrInvalidJSON   = "invalid json"
	ErrMissingID     = "missing id"
	ErrDependency    = "dependency error"
	ErrUnavailable   = "dependency unavailable"
	ErrNotFound      = "not found"
	ErrPhoneNotFound = "user phone not found"
	ErrRateLimited   = "rate limited"
)
