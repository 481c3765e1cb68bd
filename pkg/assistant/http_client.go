// pkg/assistant/http_client.go

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type pineconeClient struct {
	controlURL string
	dataURL    string
	key        string
	model      string
	httpc      *http.Client
}

// NewHTTP returns a Client speaking the Pinecone Assistant REST API.
// controlURL hosts assistant management, dataURL hosts chat and files.
func NewHTTP(controlURL, dataURL, key, model string) Client {
	return &pineconeClient{
		controlURL: strings.TrimRight(controlURL, "/"),
		dataURL:    strings.TrimRight(dataURL, "/"),
		key:        key,
		model:      model,
		httpc:      &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *pineconeClient) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Api-Key", c.key)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, rawURL, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	return b, resp.StatusCode, nil
}

func (c *pineconeClient) ListAssistants(ctx context.Context) ([]string, error) {
	b, status, err := c.do(ctx, http.MethodGet, c.controlURL+"/assistant/assistants", nil, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: list assistants: status %d: %s", ErrUnavailable, status, snippet(b))
	}
	var out struct {
		Assistants []struct {
			Name string `json:"name"`
		} `json:"assistants"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: decode assistant list: %v", ErrUnavailable, err)
	}
	names := make([]string, 0, len(out.Assistants))
	for _, a := range out.Assistants {
		names = append(names, a.Name)
	}
	return names, nil
}

func (c *pineconeClient) CreateAssistant(ctx context.Context, name string, cfg Config) error {
	body, _ := json.Marshal(map[string]string{
		"name":         name,
		"instructions": cfg.Instructions,
		"region":       cfg.Region,
	})
	b, status, err := c.do(ctx, http.MethodPost, c.controlURL+"/assistant/assistants", bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		return nil
	case status == http.StatusConflict:
		// someone else created it first; the resource exists, which is all
		// the caller asked for
		return nil
	default:
		return fmt.Errorf("%w: create assistant %q: status %d: %s", ErrUnavailable, name, status, snippet(b))
	}
}

func (c *pineconeClient) Assistant(name string) Handle {
	return &httpHandle{c: c, name: name}
}

type httpHandle struct {
	c    *pineconeClient
	name string
}

func (h *httpHandle) Name() string { return h.name }

func (h *httpHandle) Chat(ctx context.Context, messages []Message) (string, error) {
	body, _ := json.Marshal(map[string]any{
		"messages": messages,
		"model":    h.c.model,
	})
	rawURL := h.c.dataURL + "/assistant/chat/" + url.PathEscape(h.name)
	b, status, err := h.c.do(ctx, http.MethodPost, rawURL, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: chat with %q: status %d: %s", ErrUnavailable, h.name, status, snippet(b))
	}
	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("%w: decode chat response: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(out.Message.Content), nil
}

func (h *httpHandle) UploadFile(ctx context.Context, path string, metadata map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read staged file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}

	rawURL := h.c.dataURL + "/assistant/files/" + url.PathEscape(h.name)
	if len(metadata) > 0 {
		mj, _ := json.Marshal(metadata)
		rawURL += "?metadata=" + url.QueryEscape(string(mj))
	}
	b, status, err := h.c.do(ctx, http.MethodPost, rawURL, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("%w: upload to %q: status %d: %s", ErrUnavailable, h.name, status, snippet(b))
	}
	return nil
}

func (h *httpHandle) ListFiles(ctx context.Context) ([]FileInfo, error) {
	rawURL := h.c.dataURL + "/assistant/files/" + url.PathEscape(h.name)
	b, status, err := h.c.do(ctx, http.MethodGet, rawURL, nil, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: list files of %q: status %d: %s", ErrUnavailable, h.name, status, snippet(b))
	}
	var out struct {
		Files []FileInfo `json:"files"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: decode file list: %v", ErrUnavailable, err)
	}
	return out.Files, nil
}

// DeleteFile deletes by declared name. The API itself deletes by id, so we
// list first and match; retries are left to the caller because upstream
// delete idempotence is not guaranteed.
func (h *httpHandle) DeleteFile(ctx context.Context, name string) error {
	files, err := h.ListFiles(ctx)
	if err != nil {
		return err
	}
	var id string
	for _, f := range files {
		if f.Name == name {
			id = f.ID
			break
		}
	}
	if id == "" {
		return fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	rawURL := h.c.dataURL + "/assistant/files/" + url.PathEscape(h.name) + "/" + url.PathEscape(id)
	b, status, err := h.c.do(ctx, http.MethodDelete, rawURL, nil, "")
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("%w: delete %q from %q: status %d: %s", ErrUnavailable, name, h.name, status, snippet(b))
	}
	return nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if r := []rune(s); len(r) > 200 {
		return string(r[:200])
	}
	return s
}
