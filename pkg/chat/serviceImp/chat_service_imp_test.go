package serviceImp

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"docpal/entities"
	"docpal/pkg/assistant"
	"docpal/pkg/chat/repositoryImp"
	"docpal/pkg/chat/service"
)

type scriptedHandle struct {
	reply    string
	err      error
	lastSeen []assistant.Message
}

func (f *scriptedHandle) Name() string { return "alice" }

func (f *scriptedHandle) Chat(ctx context.Context, msgs []assistant.Message) (string, error) {
	f.lastSeen = append([]assistant.Message(nil), msgs...)
	return f.reply, f.err
}

func (f *scriptedHandle) UploadFile(ctx context.Context, path string, meta map[string]string) error {
	return nil
}
func (f *scriptedHandle) ListFiles(ctx context.Context) ([]assistant.FileInfo, error) {
	return nil, nil
}
func (f *scriptedHandle) DeleteFile(ctx context.Context, name string) error { return nil }

type handleEnsurer struct{ h *scriptedHandle }

func (e *handleEnsurer) Ensure(ctx context.Context, tenant string) (assistant.Handle, error) {
	return e.h, nil
}

func newTestChat(t *testing.T, h *scriptedHandle) (*Svc, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ChatTurn{}))
	return New(&handleEnsurer{h: h}, repositoryImp.New(db), zap.NewNop()), db
}

func loadTurns(t *testing.T, db *gorm.DB, userID string) []entities.ChatTurn {
	t.Helper()
	var ts []entities.ChatTurn
	require.NoError(t, db.Where("user_id = ?", userID).
		Order("created_at asc, turn_id asc").Find(&ts).Error)
	return ts
}

func TestConverseFirstTurn(t *testing.T) {
	h := &scriptedHandle{reply: "Hi there!"}
	svc, db := newTestChat(t, h)

	reply, err := svc.Converse(context.Background(), "alice", "user-1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", reply)

	// assistant saw exactly the new turn
	require.Len(t, h.lastSeen, 1)
	assert.Equal(t, assistant.Message{Role: "user", Content: "Hello"}, h.lastSeen[0])

	turns := loadTurns(t, db, "user-1")
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "Hello", turns[0].Content)
	assert.Equal(t, "assistant", turns[1].Role)
	assert.Equal(t, "Hi there!", turns[1].Content)
}

func TestConverseIncludesOrderedHistory(t *testing.T) {
	h := &scriptedHandle{reply: "third answer"}
	svc, _ := newTestChat(t, h)

	ctx := context.Background()
	h.reply = "first answer"
	_, err := svc.Converse(ctx, "alice", "user-1", "first question")
	require.NoError(t, err)
	h.reply = "second answer"
	_, err = svc.Converse(ctx, "alice", "user-1", "second question")
	require.NoError(t, err)

	h.reply = "third answer"
	_, err = svc.Converse(ctx, "alice", "user-1", "third question")
	require.NoError(t, err)

	want := []assistant.Message{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "first answer"},
		{Role: "user", Content: "second question"},
		{Role: "assistant", Content: "second answer"},
		{Role: "user", Content: "third question"},
	}
	assert.Equal(t, want, h.lastSeen)
}

func TestConverseValidation(t *testing.T) {
	svc, _ := newTestChat(t, &scriptedHandle{reply: "x"})

	_, err := svc.Converse(context.Background(), "alice", "", "Hello")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	_, err = svc.Converse(context.Background(), "alice", "user-1", "   ")
	assert.ErrorIs(t, err, service.ErrEmptyMessage)
}

func TestConverseEmptyReplyKeepsUserTurn(t *testing.T) {
	h := &scriptedHandle{reply: ""}
	svc, db := newTestChat(t, h)

	_, err := svc.Converse(context.Background(), "alice", "user-1", "Hello")
	assert.ErrorIs(t, err, service.ErrNoResponse)

	turns := loadTurns(t, db, "user-1")
	require.Len(t, turns, 1)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "Hello", turns[0].Content)
}

func TestConverseUpstreamFailure(t *testing.T) {
	h := &scriptedHandle{err: fmt.Errorf("%w: boom", assistant.ErrUnavailable)}
	svc, _ := newTestChat(t, h)

	_, err := svc.Converse(context.Background(), "alice", "user-1", "Hello")
	assert.ErrorIs(t, err, assistant.ErrUnavailable)
}

func TestHistoryRoundTrip(t *testing.T) {
	h := &scriptedHandle{}
	svc, _ := newTestChat(t, h)

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		h.reply = fmt.Sprintf("answer %d", i)
		_, err := svc.Converse(ctx, "alice", "user-1", fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	turns, err := svc.History("user-1")
	require.NoError(t, err)
	require.Len(t, turns, 6)
	for i := 1; i <= 3; i++ {
		q, a := turns[(i-1)*2], turns[(i-1)*2+1]
		assert.Equal(t, "user", q.Role)
		assert.Equal(t, fmt.Sprintf("question %d", i), q.Content)
		assert.Equal(t, "assistant", a.Role)
		assert.Equal(t, fmt.Sprintf("answer %d", i), a.Content)
	}
}
