package interfaces

import (
	"context"
	"encoding/json"

	"dataport/internal/importer/domain"
)

// Backend executes imports on the remote side. Failures carry the
// structured *domain.BackendError shape where the server provides one.
type Backend interface {
	ImportData(ctx context.Context, data *domain.ImportDataset) (json.RawMessage, error)
	ImportByFile(ctx context.Context, pathname string) (json.RawMessage, error)
	ImportPgData(ctx context.Context, data domain.RelationalImportDataset) (json.RawMessage, error)
}

// ObjectStore issues pre-signed upload URLs for storage pathnames.
type ObjectStore interface {
	PresignUploadURL(ctx context.Context, pathname string) (string, error)
}

// Uploader transfers a serialized payload to a pre-signed URL, invoking
// onProgress zero or more times while bytes are in flight.
type Uploader interface {
	Upload(ctx context.Context, url string, payload []byte, onProgress func(domain.UploadProgress)) error
}

// SettingsSink applies an imported settings object to client state.
type SettingsSink interface {
	Apply(ctx context.Context, settings json.RawMessage) error
}
