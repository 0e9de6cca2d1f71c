package domain

// BackendError is the structured failure shape returned by the remote
// import operations.
type BackendError struct {
	Code       string
	HTTPStatus int
	Path       string
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// ImportFailure is the normalized failure delivered through the error
// callback, regardless of which delivery path failed.
type ImportFailure struct {
	Code       string
	HTTPStatus int
	Path       string
	Message    string
}
