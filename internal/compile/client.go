package compile

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the external document compiler: rendered markup in, binary
// artifact out. The exchange is a plain request/response with an explicit
// success signal; a non-2xx response carries the compiler's diagnostic log.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a compile client against the given service URL.
func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("COMPILE_SERVICE_URL is required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}, nil
}

type compileRequest struct {
	Markup   string `json:"markup"`
	Target   string `json:"target"`
	FileStem string `json:"fileStem"`
}

type compileResponse struct {
	PDFBase64 string `json:"pdfBase64"`
	Log       string `json:"log,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CompileError surfaces the compiler's diagnostic output alongside the
// failure so callers can log it.
type CompileError struct {
	Status int
	Msg    string
	Log    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile service status %d: %s", e.Status, e.Msg)
}

// Compile submits markup and returns the decoded artifact. The artifact is
// verified non-empty before being treated as a success.
func (c *Client) Compile(ctx context.Context, markup, target, fileStem string) ([]byte, error) {
	payload, err := json.Marshal(compileRequest{
		Markup:   markup,
		Target:   target,
		FileStem: fileStem,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compile", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("compile request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("compile response read: %w", err)
	}

	var parsed compileResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &CompileError{Status: resp.StatusCode, Msg: "unreadable compiler response"}
	}

	if resp.StatusCode != http.StatusOK || parsed.Error != "" {
		msg := parsed.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &CompileError{Status: resp.StatusCode, Msg: msg, Log: parsed.Log}
	}

	artifact, err := base64.StdEncoding.DecodeString(parsed.PDFBase64)
	if err != nil {
		return nil, &CompileError{Status: resp.StatusCode, Msg: "artifact is not valid base64", Log: parsed.Log}
	}
	if len(artifact) == 0 {
		return nil, &CompileError{Status: resp.StatusCode, Msg: "artifact is empty", Log: parsed.Log}
	}
	return artifact, nil
}
