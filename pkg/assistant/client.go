// pkg/assistant/client.go

package assistant

import (
	"context"
	"errors"
)

// Config is the creation-time configuration of an assistant resource.
// There is exactly one creation path (the provisioner), so every assistant
// is created with the same policy.
type Config struct {
	Instructions string
	Region       string
	Model        string
}

type Message struct {
	Role    string `json:"role"` // user|assistant
	Content string `json:"content"`
}

type FileInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

var (
	// ErrUnavailable wraps any transport or upstream failure talking to the
	// assistant service.
	ErrUnavailable = errors.New("assistant service unavailable")

	// ErrFileNotFound is returned by DeleteFile when no indexed file has the
	// given name.
	ErrFileNotFound = errors.New("file not found in assistant index")
)

type Client interface {
	// ListAssistants returns the names of all assistant resources.
	ListAssistants(ctx context.Context) ([]string, error)

	// CreateAssistant creates a named assistant. An "already exists"
	// response from the service is treated as success, so concurrent
	// creators across processes converge on one resource.
	CreateAssistant(ctx context.Context, name string, cfg Config) error

	// Assistant returns a handle to a named assistant. The handle is cheap;
	// operations on a nonexistent assistant fail upstream.
	Assistant(name string) Handle
}

type Handle interface {
	Name() string

	// Chat submits the full ordered message sequence and returns the reply
	// content, which may be empty.
	Chat(ctx context.Context, messages []Message) (string, error)

	// UploadFile submits a staged file plus metadata to the assistant index.
	UploadFile(ctx context.Context, path string, metadata map[string]string) error

	ListFiles(ctx context.Context) ([]FileInfo, error)

	// DeleteFile removes an indexed file by its declared name.
	DeleteFile(ctx context.Context, name string) error
}
