package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"docpal/entities"
	"docpal/pkg/assistant"
	"docpal/pkg/chat/repositoryImp"
	"docpal/pkg/chat/serviceImp"
	"docpal/pkg/provision"
)

func newCtrl(t *testing.T) (*ChatCtrl, *assistant.Mock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ChatTurn{}))

	mock := assistant.NewMock()
	mock.ChatReply = "canned reply"
	prov := provision.New(mock, assistant.Config{Instructions: "x"}, zap.NewNop())
	svc := serviceImp.New(prov, repositoryImp.New(db), zap.NewNop())
	return New(svc, zap.NewNop()), mock
}

func postChat(t *testing.T, ctrl *ChatCtrl, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, ctrl.Send(c))
	return rec
}

func TestSend(t *testing.T) {
	ctrl, mock := newCtrl(t)

	rec := postChat(t, ctrl, url.Values{
		"email":   {"alice@example.com"},
		"userId":  {"user-1"},
		"content": {"Hello"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "canned reply")
	assert.True(t, mock.Created("alice"))
}

func TestSendMissingContent(t *testing.T) {
	ctrl, _ := newCtrl(t)

	rec := postChat(t, ctrl, url.Values{
		"email":  {"alice@example.com"},
		"userId": {"user-1"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "content is required")
}

func TestSendMissingUser(t *testing.T) {
	ctrl, _ := newCtrl(t)

	rec := postChat(t, ctrl, url.Values{
		"email":   {"alice@example.com"},
		"content": {"Hello"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSendBadEmail(t *testing.T) {
	ctrl, _ := newCtrl(t)

	rec := postChat(t, ctrl, url.Values{
		"email":   {"@nothing"},
		"userId":  {"user-1"},
		"content": {"Hello"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendPrefersAuthenticatedUser(t *testing.T) {
	ctrl, _ := newCtrl(t)

	form := url.Values{
		"email":   {"alice@example.com"},
		"userId":  {"victim-user"},
		"content": {"Hello"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("uid", "authed-user")
	require.NoError(t, ctrl.Send(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// the turn belongs to the authenticated caller, not the form value
	req = httptest.NewRequest(http.MethodGet, "/api/history?userId=victim-user", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, ctrl.History(echo.New().NewContext(req, rec)))
	assert.NotContains(t, rec.Body.String(), "Hello")

	req = httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec = httptest.NewRecorder()
	c = echo.New().NewContext(req, rec)
	c.Set("uid", "authed-user")
	require.NoError(t, ctrl.History(c))
	assert.Contains(t, rec.Body.String(), "Hello")
}

func TestHistoryEndpoint(t *testing.T) {
	ctrl, _ := newCtrl(t)

	postChat(t, ctrl, url.Values{
		"email":   {"alice@example.com"},
		"userId":  {"user-1"},
		"content": {"Hello"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/history?userId=user-1", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.History(echo.New().NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Hello"`)
	assert.Contains(t, rec.Body.String(), "canned reply")
}
