package importer

import (
	"encoding/json"
	"errors"
	"time"

	"dataport/internal/importer/domain"
)

// Callbacks is the caller's observation surface for one import call.
// Every field is optional, an absent callback is simply not invoked.
// Callback panics are not recovered, they surface at the invocation
// point.
type Callbacks struct {
	OnStageChange   func(stage domain.Stage)
	OnError         func(failure domain.ImportFailure)
	OnSuccess       func(results json.RawMessage, duration time.Duration)
	OnFileUploading func(progress domain.UploadProgress)
}

func (c Callbacks) reportStage(stage domain.Stage) {
	if c.OnStageChange != nil {
		c.OnStageChange(stage)
	}
}

func (c Callbacks) reportError(failure domain.ImportFailure) {
	if c.OnError != nil {
		c.OnError(failure)
	}
}

func (c Callbacks) reportSuccess(results json.RawMessage, duration time.Duration) {
	if c.OnSuccess != nil {
		c.OnSuccess(results, duration)
	}
}

func (c Callbacks) reportProgress(progress domain.UploadProgress) {
	if c.OnFileUploading != nil {
		c.OnFileUploading(progress)
	}
}

// normalizeFailure maps any backend-call failure into the uniform
// ImportFailure shape. Structured fields are taken verbatim when the
// error chain carries a BackendError, the message always comes from the
// error itself.
func normalizeFailure(err error) domain.ImportFailure {
	failure := domain.ImportFailure{Message: err.Error()}

	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		failure.Code = backendErr.Code
		failure.HTTPStatus = backendErr.HTTPStatus
		failure.Path = backendErr.Path
	}

	return failure
}
