// Package uploader performs the staged-delivery transfer: a single PUT
// of a JSON payload to a pre-signed URL, with live progress reporting.
package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"dataport/internal/importer/domain"
	"dataport/pkg/logger"
)

// HTTPUploader uploads payloads over plain HTTP. One attempt per call,
// no chunking, no resume, no retry.
type HTTPUploader struct {
	client *http.Client
	logger *logger.Logger
}

func New(log *logger.Logger) *HTTPUploader {
	return &HTTPUploader{
		client: &http.Client{},
		logger: log.WithField("component", "uploader"),
	}
}

// Upload PUTs payload to url with a JSON content type. onProgress fires
// for every slice of bytes the transport consumes; loaded is
// monotonically non-decreasing within one call. A non-2xx response is
// returned as an error carrying the response status text.
func (u *HTTPUploader) Upload(ctx context.Context, url string, payload []byte, onProgress func(domain.UploadProgress)) error {
	body := &progressReader{
		reader: bytes.NewReader(payload),
		total:  int64(len(payload)),
		report: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = int64(len(payload))

	u.logger.Debug("starting upload", "bytes", len(payload))

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload transport: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload rejected: %s", resp.Status)
	}

	u.logger.Debug("upload complete", "bytes", len(payload), "status", resp.StatusCode)
	return nil
}

// progressReader counts bytes as the HTTP transport drains the payload
// and turns the counts into UploadProgress snapshots.
type progressReader struct {
	reader  *bytes.Reader
	total   int64
	loaded  int64
	started time.Time
	report  func(domain.UploadProgress)
}

func (p *progressReader) Read(b []byte) (int, error) {
	if p.started.IsZero() {
		p.started = time.Now()
	}

	n, err := p.reader.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.emit()
	}
	return n, err
}

func (p *progressReader) emit() {
	// only report when the total length is computable
	if p.report == nil || p.total <= 0 {
		return
	}

	percent := math.Round(float64(p.loaded)/float64(p.total)*1000) / 10
	if percent == 100 {
		percent = 99.5
	}

	var speed, rest float64
	if elapsed := time.Since(p.started).Seconds(); elapsed > 0 {
		rate := float64(p.loaded) / elapsed // average bytes/sec since start
		speed = rate / 1024
		if rate > 0 {
			rest = float64(p.total-p.loaded) / rate
		}
	}

	p.report(domain.UploadProgress{
		Progress: percent,
		Speed:    speed,
		RestTime: rest,
	})
}
