package usecase

// Typed failure taxonomy. Every use case surfaces one of these; nothing
// is retried here, retries are the caller's problem.

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// AccessError means the data store rejected the operation (permissions,
// row-level ownership, connectivity at the store boundary).
type AccessError struct {
	Message string
}

func (e *AccessError) Error() string {
	return e.Message
}

// UpstreamError carries a non-2xx answer from the billing provider.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}
