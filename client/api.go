package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend, carrying the server's
// error list verbatim.
type APIError struct {
	Status int
	Errors []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// FirstMessage returns the first server message, or a fallback.
func (e *APIError) FirstMessage(fallback string) string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return fallback
}

func meetupPath(id uint) string {
	return fmt.Sprintf("/meetups/%d", id)
}

func listPath(path string, page int) string {
	if page <= 1 {
		return path
	}
	return fmt.Sprintf("%s?page=%d", path, page)
}

// api is the shared REST plumbing for the resource clients.
type api struct {
	baseURL string
	http    *http.Client
}

// do issues a JSON request against the backend. A nil out discards the
// response body. Non-2xx responses decode into an *APIError.
func (a *api) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var parsed struct {
			Errors []string `json:"errors"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr == nil {
			apiErr.Errors = parsed.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
