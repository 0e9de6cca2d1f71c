package errors

import "errors"

var (
	ErrUploadFailed   = errors.New("file upload failed")
	ErrNoSettingsSink = errors.New("no settings sink configured")
)
