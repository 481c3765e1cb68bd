// pkg/assistant/mock_client.go

package assistant

import (
	"context"
	"fmt"
	"sync"
)

// Mock is an in-memory assistant service. It backs local development when
// no API key is configured, and tests.
type Mock struct {
	mu         sync.Mutex
	assistants map[string]*mockAssistant

	// ChatReply, when set, is returned verbatim by every Chat call.
	ChatReply string
}

type mockAssistant struct {
	cfg   Config
	files map[string]FileInfo
	seq   int
}

func NewMock() *Mock {
	return &Mock{assistants: map[string]*mockAssistant{}}
}

func (m *Mock) ListAssistants(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.assistants))
	for n := range m.assistants {
		names = append(names, n)
	}
	return names, nil
}

func (m *Mock) CreateAssistant(ctx context.Context, name string, cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assistants[name]; ok {
		return nil // already exists counts as created
	}
	m.assistants[name] = &mockAssistant{cfg: cfg, files: map[string]FileInfo{}}
	return nil
}

func (m *Mock) Assistant(name string) Handle {
	return &mockHandle{m: m, name: name}
}

// Created reports whether an assistant with the given name exists.
func (m *Mock) Created(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.assistants[name]
	return ok
}

type mockHandle struct {
	m    *Mock
	name string
}

func (h *mockHandle) Name() string { return h.name }

func (h *mockHandle) get() (*mockAssistant, error) {
	a, ok := h.m.assistants[h.name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown assistant %q", ErrUnavailable, h.name)
	}
	return a, nil
}

func (h *mockHandle) Chat(ctx context.Context, messages []Message) (string, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	a, err := h.get()
	if err != nil {
		return "", err
	}
	if h.m.ChatReply != "" {
		return h.m.ChatReply, nil
	}
	if len(messages) == 0 {
		return "", nil
	}
	return fmt.Sprintf("(mock) %q noted; %d prior turns, %d documents on file",
		messages[len(messages)-1].Content, len(messages)-1, len(a.files)), nil
}

func (h *mockHandle) UploadFile(ctx context.Context, path string, metadata map[string]string) error {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	a, err := h.get()
	if err != nil {
		return err
	}
	name := metadata["file_name"]
	if name == "" {
		name = path
	}
	a.seq++
	a.files[name] = FileInfo{ID: fmt.Sprintf("file-%d", a.seq), Name: name, Status: "Available"}
	return nil
}

func (h *mockHandle) ListFiles(ctx context.Context) ([]FileInfo, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	a, err := h.get()
	if err != nil {
		return nil, err
	}
	out := make([]FileInfo, 0, len(a.files))
	for _, f := range a.files {
		out = append(out, f)
	}
	return out, nil
}

func (h *mockHandle) DeleteFile(ctx context.Context, name string) error {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	a, err := h.get()
	if err != nil {
		return err
	}
	if _, ok := a.files[name]; !ok {
		return fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	delete(a.files, name)
	return nil
}
