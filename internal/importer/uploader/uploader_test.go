package uploader

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataport/internal/importer/domain"
	"dataport/pkg/logger"
)

func newTestUploader() *HTTPUploader {
	return New(logger.NewWithWriter(logger.ERROR, io.Discard))
}

// progressCollector appends reports under a lock: the HTTP transport
// drains the request body from its own goroutine.
type progressCollector struct {
	mu      sync.Mutex
	reports []domain.UploadProgress
}

func (c *progressCollector) report(p domain.UploadProgress) {
	c.mu.Lock()
	c.reports = append(c.reports, p)
	c.mu.Unlock()
}

func (c *progressCollector) all() []domain.UploadProgress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.UploadProgress(nil), c.reports...)
}

func TestUpload_SendsJSONPayload(t *testing.T) {
	payload := []byte(`{"sessions":[{"id":"s1"}]}`)

	var gotMethod, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collector := &progressCollector{}
	err := newTestUploader().Upload(context.Background(), server.URL, payload, collector.report)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.True(t, bytes.Equal(payload, gotBody))
}

func TestUpload_ProgressClampsAt99Point5(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 256*1024)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collector := &progressCollector{}
	err := newTestUploader().Upload(context.Background(), server.URL, payload, collector.report)
	require.NoError(t, err)

	reports := collector.all()
	require.NotEmpty(t, reports)

	last := reports[len(reports)-1]
	assert.Equal(t, 99.5, last.Progress, "loaded==total must report 99.5, never 100")

	prev := 0.0
	for _, p := range reports {
		assert.NotEqual(t, 100.0, p.Progress)
		assert.GreaterOrEqual(t, p.Progress, prev, "progress must be non-decreasing")
		prev = p.Progress

		assert.GreaterOrEqual(t, p.Speed, 0.0)
		assert.False(t, math.IsInf(p.Speed, 0) || math.IsNaN(p.Speed))
		assert.GreaterOrEqual(t, p.RestTime, 0.0)
		assert.False(t, math.IsInf(p.RestTime, 0) || math.IsNaN(p.RestTime))
	}
}

func TestUpload_NoProgressForEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collector := &progressCollector{}
	err := newTestUploader().Upload(context.Background(), server.URL, nil, collector.report)

	require.NoError(t, err)
	assert.Empty(t, collector.all())
}

func TestUpload_NilProgressCallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestUploader().Upload(context.Background(), server.URL, []byte(`{}`), nil)
	require.NoError(t, err)
}

func TestUpload_RejectedStatusCarriesStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	err := newTestUploader().Upload(context.Background(), server.URL, []byte(`{}`), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestUpload_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // no listener behind the URL anymore

	err := newTestUploader().Upload(context.Background(), server.URL, []byte(`{}`), nil)
	require.Error(t, err)
}
