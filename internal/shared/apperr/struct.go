package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // message safe to show to the caller
	Fields    map[string]string // optional field -> message validation details
	Err       error             // internal error (for logs)
}
