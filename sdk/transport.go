package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response body is quoted in a StatusError.
const maxErrorBody = 512

// transport is the shared HTTP layer: base URI, default headers, one request
// per call. It holds no mutable state and is safe for concurrent use as long
// as the underlying *http.Client is.
type transport struct {
	baseURI string
	headers http.Header
	client  *http.Client
	logger  *zap.Logger
}

func newTransport(cfg Config, client *http.Client, logger *zap.Logger, userAgent string) *transport {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+cfg.APIKey)
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	if userAgent != "" {
		h.Set("User-Agent", userAgent)
	}

	return &transport{
		baseURI: strings.TrimRight(cfg.BaseURI, "/"),
		headers: h,
		client:  client,
		logger:  logger,
	}
}

// do sends one request. body, when non-nil, is JSON-encoded. When out is
// non-nil the response body is decoded into it; an empty 2xx body leaves it
// untouched. Any non-2xx status is returned as a *StatusError.
func (t *transport) do(ctx context.Context, method, path string, body any, out *any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURI+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range t.headers {
		req.Header[k] = v
	}

	log := t.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("method", method),
		zap.String("path", path),
	)
	start := time.Now()

	resp, err := t.client.Do(req)
	if err != nil {
		log.Debug("api request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return err
	}
	defer resp.Body.Close()

	log.Debug("api request",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// getJSON, sendJSON and remove are the three request shapes the resources use.

func (t *transport) getJSON(ctx context.Context, path string) (any, error) {
	var out any
	if err := t.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *transport) sendJSON(ctx context.Context, method, path string, data Object) (any, error) {
	if data == nil {
		data = Object{}
	}
	var out any
	if err := t.do(ctx, method, path, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *transport) remove(ctx context.Context, path string) error {
	return t.do(ctx, http.MethodDelete, path, nil, nil)
}
