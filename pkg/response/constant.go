package response

const (
	// MessageSuccess is the message attached to successful responses.
	MessageSuccess = "success"

	// DefaultErrorMessage hides internal failures from callers.
	DefaultErrorMessage = "internal server error"

	// InternalServerErrorCode is the generic failure code.
	InternalServerErrorCode = 500
)
