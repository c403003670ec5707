package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the fixed per-request ceiling. Requests that exceed it
// surface as a network failure.
const DefaultTimeout = 10 * time.Second

// TokenSource yields the current bearer token, or "" when unauthenticated.
// The session store supplies it; the Gateway never stores a token itself.
type TokenSource func() string

// Client is the HTTP gateway to the menu service. Every call attaches the
// bearer token (when present), enforces the request timeout, and translates
// failures into the tagged *Error taxonomy.
//
// OnUnauthorized is invoked once for every 401 response, before the error is
// returned to the caller. The session store hands in its teardown hook here;
// the Gateway deliberately does not import the session package.
type Client struct {
	baseURL        string
	httpc          *http.Client
	tokenSource    TokenSource
	onUnauthorized func()
}

type Options struct {
	BaseURL        string
	Timeout        time.Duration // 0 means DefaultTimeout
	TokenSource    TokenSource
	OnUnauthorized func()
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		httpc:          &http.Client{Timeout: timeout},
		tokenSource:    opts.TokenSource,
		onUnauthorized: opts.OnUnauthorized,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// errorBody is the shape the service uses for failure payloads.
type errorBody struct {
	Message string `json:"message"`
}

// do sends one JSON request. body may be nil; out may be nil when the caller
// does not care about the response payload.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// upload sends one multipart/form-data request (image uploads). The file field
// is named "image"; extra fields are optional.
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
	}
	if _, err := io.Copy(fw, file); err != nil {
		return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
	}
	for k, v := range fields {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
		}
	}
	if err := mw.Close(); err != nil {
		return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if c.tokenSource != nil {
		if tok := strings.TrimSpace(c.tokenSource()); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return translateTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Best-effort read of the service's own message.
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(raw, &eb)

		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			// Global teardown: the whole session is invalid, not just this call.
			c.onUnauthorized()
		}
		return translateStatus(resp.StatusCode, eb.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: FailureUnknown, Message: "Request failed", Detail: "decode response: " + err.Error()}
	}
	return nil
}
