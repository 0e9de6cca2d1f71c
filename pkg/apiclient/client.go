// Package apiclient is the HTTP/JSON implementation of the import
// collaborators: the remote import operations and the pre-signed URL
// issuer.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dataport/internal/importer/domain"
	"dataport/pkg/logger"
)

const (
	importDataPath   = "/api/import/data"
	importFilePath   = "/api/import/file"
	importPgDataPath = "/api/import/pgdata"
	presignPath      = "/api/storage/presign"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

func New(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  log.WithField("component", "apiclient"),
	}
}

// ImportData runs the inline import operation with the full dataset in
// the request body.
func (c *Client) ImportData(ctx context.Context, data *domain.ImportDataset) (json.RawMessage, error) {
	return c.importCall(ctx, importDataPath, data)
}

// ImportByFile runs the file-based import operation against an object
// previously uploaded to storage.
func (c *Client) ImportByFile(ctx context.Context, pathname string) (json.RawMessage, error) {
	return c.importCall(ctx, importFilePath, map[string]string{"pathname": pathname})
}

// ImportPgData runs the inline import operation for relational rows.
func (c *Client) ImportPgData(ctx context.Context, data domain.RelationalImportDataset) (json.RawMessage, error) {
	return c.importCall(ctx, importPgDataPath, data)
}

// PresignUploadURL asks the backend for a writable URL for pathname.
func (c *Client) PresignUploadURL(ctx context.Context, pathname string) (string, error) {
	body, err := c.post(ctx, presignPath, map[string]string{"pathname": pathname})
	if err != nil {
		return "", err
	}

	var decoded struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode presign response: %w", err)
	}
	if decoded.URL == "" {
		return "", fmt.Errorf("presign response missing url")
	}
	return decoded.URL, nil
}

func (c *Client) importCall(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	body, err := c.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode import response: %w", err)
	}
	return decoded.Results, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("calling backend", "path", path, "bytes", len(encoded))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}

// decodeError turns an error response into the structured BackendError
// shape. The body carries code/httpStatus/path/message when the server
// produced the failure, a bare status otherwise.
func decodeError(statusCode int, body []byte) error {
	backendErr := &domain.BackendError{HTTPStatus: statusCode}

	var decoded struct {
		Code       string `json:"code"`
		HTTPStatus int    `json:"httpStatus"`
		Path       string `json:"path"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil {
		backendErr.Code = decoded.Code
		backendErr.Path = decoded.Path
		backendErr.Message = decoded.Message
		if decoded.HTTPStatus != 0 {
			backendErr.HTTPStatus = decoded.HTTPStatus
		}
	}

	if backendErr.Message == "" {
		backendErr.Message = fmt.Sprintf("backend returned %d: %s", statusCode, http.StatusText(statusCode))
	}
	return backendErr
}
