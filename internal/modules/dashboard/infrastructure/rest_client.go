package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/shared/normalization"
)

// errorBodyLimit caps how much of a failed response is read for its message.
const errorBodyLimit = 4 << 10

// RESTClient wraps http.Client with base URL handling shared by the backend adapters.
type RESTClient struct {
	baseURL string
	client  *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:8081"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &RESTClient{baseURL: trimmed, client: client}
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	return http.NewRequestWithContext(ctx, method, target, body)
}

func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}

// BackendClient implements port.Backend against the hotel REST API with the caller's token.
// It never retries.
type BackendClient struct {
	rest *RESTClient
}

func NewBackendClient(baseURL string, timeout time.Duration, client *http.Client) *BackendClient {
	return &BackendClient{rest: NewRESTClient(baseURL, timeout, client)}
}

func (c *BackendClient) Fetch(ctx context.Context, token, path string, query url.Values) (any, error) {
	req, err := c.rest.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		slog.Error("backend request build failed", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	setAuth(req, token)

	status, payload, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}
	slog.Debug("backend fetch", slog.String("url", req.URL.String()), slog.Int("status", status))
	return payload, nil
}

func (c *BackendClient) Send(ctx context.Context, token string, mutation port.MutationRequest) (port.MutationResult, error) {
	method := strings.ToUpper(strings.TrimSpace(mutation.Method))
	if method == "" {
		method = http.MethodPost
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case len(mutation.Files) > 0:
		buf, ct, err := encodeMultipart(mutation.Files)
		if err != nil {
			return port.MutationResult{}, err
		}
		body, contentType = buf, ct
	case mutation.Body != nil:
		raw, err := json.Marshal(mutation.Body)
		if err != nil {
			return port.MutationResult{}, fmt.Errorf("encode %s %s body: %w", method, mutation.Path, err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := c.rest.NewRequest(ctx, method, mutation.Path, body)
	if err != nil {
		slog.Error("backend request build failed", slog.String("path", mutation.Path), slog.Any("error", err))
		return port.MutationResult{}, err
	}
	if len(mutation.Query) > 0 {
		req.URL.RawQuery = mutation.Query.Encode()
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	setAuth(req, token)

	status, payload, err := c.roundTrip(req)
	if err != nil {
		return port.MutationResult{}, err
	}
	slog.Info("backend mutation", slog.String("method", method), slog.String("path", mutation.Path), slog.Int("status", status))
	return port.MutationResult{Status: status, Payload: payload}, nil
}

func (c *BackendClient) roundTrip(req *http.Request) (int, any, error) {
	res, err := c.rest.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("%w: %w", port.ErrUnavailable, ctxErr)
		}
		slog.Warn("backend request error", slog.String("url", req.URL.String()), slog.Any("error", err))
		return 0, nil, fmt.Errorf("%w: %v", port.ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
		backendErr := &port.BackendError{
			Status:  res.StatusCode,
			Message: serverMessage(raw),
			Kind:    kindForStatus(res.StatusCode),
		}
		slog.Warn("backend unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("message", backendErr.Message))
		return res.StatusCode, nil, backendErr
	}

	payload, err := decodePayload(res.Body)
	if err != nil {
		return res.StatusCode, nil, &port.BackendError{Status: http.StatusBadGateway, Message: "", Kind: fmt.Errorf("%w: %v", port.ErrRejected, err)}
	}
	return res.StatusCode, payload, nil
}

func setAuth(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		req.Header.Set("Authorization", "Bearer "+trimmed)
	}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return port.ErrUnauthorized
	case http.StatusForbidden:
		return port.ErrForbidden
	case http.StatusNotFound:
		return port.ErrNotFound
	default:
		return port.ErrRejected
	}
}

// decodePayload treats an empty body as nil. A success body that is not JSON,
// such as "User registered successfully", is returned as text.
func decodePayload(body io.Reader) (any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read backend payload: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return string(trimmed), nil
	}
	return payload, nil
}

// serverMessage extracts the message or error field of an error body.
// Plain text bodies are returned as-is.
func serverMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		if trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '<' {
			return ""
		}
		return string(trimmed)
	}
	for _, key := range []string{"message", "error"} {
		if msg := normalization.AsString(payload[key]); msg != "" {
			return msg
		}
	}
	return ""
}

func encodeMultipart(files []port.FilePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, file := range files {
		if file.Open == nil {
			continue
		}
		field := file.Field
		if field == "" {
			field = "files"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(field), escapeQuotes(file.Name)))
		if file.ContentType != "" {
			header.Set("Content-Type", file.ContentType)
		} else {
			header.Set("Content-Type", "application/octet-stream")
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		src, err := file.Open()
		if err != nil {
			return nil, "", fmt.Errorf("open upload %q: %w", file.Name, err)
		}
		_, err = io.Copy(part, src)
		src.Close()
		if err != nil {
			return nil, "", fmt.Errorf("copy upload %q: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

var _ port.Backend = (*BackendClient)(nil)
