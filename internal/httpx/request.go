package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const contentTypeJSON = "application/json"

// JSONRequest returns a request builder for Do. A non-nil payload is
// marshaled once and replayed on every attempt.
func JSONRequest(method, url, token string, payload any) (func(context.Context) (*http.Request, error), error) {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = b
	}

	return func(ctx context.Context) (*http.Request, error) {
		var r io.Reader
		if body != nil {
			r = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, r)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", contentTypeJSON)
		}
		req.Header.Set("Accept", contentTypeJSON)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req, nil
	}, nil
}
