package tattoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the remote backend origin used when no base URL is
// configured.
const DefaultBaseURL = "https://tattoo-backend.onrender.com"

const (
	generatePath = "/generate-tattoo/"
	alterPath    = "/alter-tattoo/"
)

// Client talks to a tattoo generation backend. The zero value is not
// usable; construct with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient returns a client for the backend at baseURL. Trailing
// slashes are trimmed; an empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		// Image generation is slow; does not bound an individual
		// response, only protects against dead connections.
		http: &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate submits the photo and design parameters as multipart form
// data and returns the generated result.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	name := req.PhotoName
	if name == "" {
		name = "photo.png"
	}
	part, err := mw.CreateFormFile("photo", name)
	if err != nil {
		return Result{}, fmt.Errorf("building multipart request: %w", err)
	}
	if _, err := part.Write(req.Photo); err != nil {
		return Result{}, fmt.Errorf("building multipart request: %w", err)
	}

	fields := map[string]string{
		"style":               req.Style,
		"theme":               req.Theme,
		"color_mode":          req.ColorMode,
		"physical_attributes": req.Placement,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return Result{}, fmt.Errorf("building multipart request: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("building multipart request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, &body)
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(httpReq)
}

// Alter submits a refinement request as JSON and returns the replaced
// result. The caller is responsible for normalizing the image to raw
// base64 first.
func (c *Client) Alter(ctx context.Context, req AlterRequest) (Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encoding alter request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+alterPath, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq)
}

// do executes the request and applies the shared response contract:
// non-2xx surfaces the body text verbatim, a 2xx with an in-band
// {error} surfaces that error, anything else decodes into a Result.
func (c *Client) do(req *http.Request) (Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = fmt.Sprintf("backend returned %s", resp.Status)
		}
		return Result{}, fmt.Errorf("%s", msg)
	}

	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Result{}, fmt.Errorf("decoding backend response: %w", err)
	}
	if decoded.Error != "" {
		return Result{}, fmt.Errorf("%s", decoded.Error)
	}

	return Result{Idea: decoded.Idea, ImageBase64: decoded.ImageBase64}, nil
}
