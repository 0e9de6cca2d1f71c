// Package importer decides how an export bundle reaches the backend:
// small payloads go inline in a single call, large payloads are staged
// through object storage behind a pre-signed URL.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dataport/internal/importer/domain"
	"dataport/internal/importer/interfaces"
	errs "dataport/pkg/errors"
	"dataport/pkg/logger"
)

// sizeThreshold bounds inline request bodies indirectly: it counts
// units, not bytes, assuming a roughly bounded per-unit size. Payloads
// at or above it take the staged path.
const sizeThreshold = 500

// storagePrefix is the object-storage directory staged payloads land in.
const storagePrefix = "import_config"

// Service is the import delivery orchestrator.
type Service struct {
	backend  interfaces.Backend
	store    interfaces.ObjectStore
	uploader interfaces.Uploader
	newID    func() string
	logger   *logger.Logger
}

func New(backend interfaces.Backend, store interfaces.ObjectStore, up interfaces.Uploader, log *logger.Logger) *Service {
	return &Service{
		backend:  backend,
		store:    store,
		uploader: up,
		newID:    func() string { return uuid.New().String() },
		logger:   log.WithField("component", "importer"),
	}
}

// ImportData delivers a structured dataset. Backend failures are
// swallowed into the callbacks; only presign and upload failures from
// the staged path come back as an error.
func (s *Service) ImportData(ctx context.Context, data *domain.ImportDataset, cb Callbacks) error {
	units := data.UnitCount()

	if units < sizeThreshold {
		s.logger.Debug("direct delivery selected", "units", units)
		s.deliverInline(ctx, cb, func(ctx context.Context) (json.RawMessage, error) {
			return s.backend.ImportData(ctx, data)
		})
		return nil
	}

	s.logger.Debug("staged delivery selected", "units", units)
	return s.deliverStaged(ctx, data, cb)
}

// ImportPgData delivers a relational-table dataset with the same
// routing and reporting contract as ImportData.
func (s *Service) ImportPgData(ctx context.Context, data domain.RelationalImportDataset, cb Callbacks) error {
	units := data.UnitCount()

	if units < sizeThreshold {
		s.logger.Debug("direct delivery selected", "units", units)
		s.deliverInline(ctx, cb, func(ctx context.Context) (json.RawMessage, error) {
			return s.backend.ImportPgData(ctx, data)
		})
		return nil
	}

	s.logger.Debug("staged delivery selected", "units", units)
	return s.deliverStaged(ctx, data, cb)
}

// deliverInline runs one backend import call and reports its outcome.
// Importing is announced before the call, the duration covers the call
// itself, and any failure ends up in the callbacks, never in a return
// value.
func (s *Service) deliverInline(ctx context.Context, cb Callbacks, call func(context.Context) (json.RawMessage, error)) {
	cb.reportStage(domain.StageImporting)

	start := time.Now()
	results, err := call(ctx)
	duration := time.Since(start)

	if err != nil {
		s.logger.Warn("backend import failed", "error", err, "duration", duration)
		cb.reportStage(domain.StageError)
		cb.reportError(normalizeFailure(err))
		return
	}

	s.logger.Info("import finished", "duration", duration)
	cb.reportStage(domain.StageSuccess)
	cb.reportSuccess(results, duration)
}

// deliverStaged uploads the payload to object storage, then points the
// backend at the stored object. Each step is a commit point, nothing is
// rolled back. Presign failures propagate raw; upload failures come
// back wrapped in ErrUploadFailed without touching the stage callbacks,
// leaving the caller at Uploading (see DESIGN.md on this asymmetry).
func (s *Service) deliverStaged(ctx context.Context, payload interface{}, cb Callbacks) error {
	pathname := fmt.Sprintf("%s/%s.json", storagePrefix, s.newID())

	url, err := s.store.PresignUploadURL(ctx, pathname)
	if err != nil {
		return fmt.Errorf("presign upload url for %s: %w", pathname, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	cb.reportStage(domain.StageUploading)
	s.logger.Debug("uploading staged payload", "pathname", pathname, "bytes", len(body))

	if err := s.uploader.Upload(ctx, url, body, cb.reportProgress); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUploadFailed, err)
	}

	s.deliverInline(ctx, cb, func(ctx context.Context) (json.RawMessage, error) {
		return s.backend.ImportByFile(ctx, pathname)
	})
	return nil
}
