package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskui/internal/taskview"
	"taskui/internal/testutil"
	"taskui/internal/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T, svc *testutil.FakeService) (*web.Server, *taskview.Manager, http.Handler) {
	t.Helper()
	view := taskview.New(svc, zap.NewNop())
	srv := web.NewServer(view, zap.NewNop())
	srv.Mount(context.Background())
	return srv, view, srv.Handler()
}

func do(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersTable(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", "2%", "pending")
	svc.AddTask(2, "<script>", "", "done")
	_, _, h := newServer(t, svc)

	w := do(h, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<td>Buy milk</td>")
	assert.Contains(t, body, "<td>2%</td>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<td><script>")
	assert.Contains(t, body, `action="/tasks/2/delete"`)
	assert.Contains(t, body, `<button type="submit">Add</button>`)
	assert.Less(t, strings.Index(body, "Buy milk"), strings.Index(body, "&lt;script&gt;"))
}

func TestMount_LoadsOnce(t *testing.T) {
	svc := testutil.NewFakeService()
	_, _, h := newServer(t, svc)

	do(h, http.MethodGet, "/", nil)
	do(h, http.MethodGet, "/", nil)

	assert.Equal(t, []string{"GET /tasks"}, svc.Calls())
}

func TestSubmit_CreatesAndRedirects(t *testing.T) {
	svc := testutil.NewFakeService()
	_, view, h := newServer(t, svc)
	svc.ResetCalls()

	w := do(h, http.MethodPost, "/submit", url.Values{"title": {"Buy milk"}, "description": {"2%"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, []string{"POST /tasks", "GET /tasks"}, svc.Calls())
	require.Len(t, view.Snapshot().Tasks, 1)
	assert.Equal(t, taskview.Form{}, view.Snapshot().Form)
}

func TestEdit_ThenSubmitUpdates(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(5, "X", "Y", "done")
	_, view, h := newServer(t, svc)
	svc.ResetCalls()

	w := do(h, http.MethodPost, "/tasks/5/edit", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, svc.Calls())
	assert.True(t, view.Snapshot().Editing())

	page := do(h, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, `value="X"`)
	assert.Contains(t, page, `<input type="hidden" name="edit_id" value="5">`)
	assert.Contains(t, page, `<input type="hidden" name="edit_status" value="done">`)
	assert.Contains(t, page, `<button type="submit">Update</button>`)

	do(h, http.MethodPost, "/submit", url.Values{
		"title":       {"X2"},
		"description": {"Y"},
		"edit_id":     {"5"},
		"edit_status": {"done"},
	})

	assert.Equal(t, []string{"PUT /tasks/5", "GET /tasks"}, svc.Calls())
	assert.Equal(t, "done", svc.Inputs()[0].Status)
	assert.False(t, view.Snapshot().Editing())
}

func TestSubmit_StaleCreatePageStillCreates(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "keep me", "important", "done")
	_, view, h := newServer(t, svc)

	// a page rendered before any edit has no hidden edit fields
	stale := do(h, http.MethodGet, "/", nil).Body.String()
	require.NotContains(t, stale, "edit_id")

	do(h, http.MethodPost, "/tasks/1/edit", url.Values{})
	svc.ResetCalls()

	w := do(h, http.MethodPost, "/submit", url.Values{"title": {"new task"}, "description": {""}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"POST /tasks", "GET /tasks"}, svc.Calls())
	tasks := svc.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "keep me", tasks[0].Title)
	assert.Equal(t, "important", tasks[0].Description)
	assert.Equal(t, "new task", tasks[1].Title)
	assert.True(t, view.Snapshot().Editing())
}

func TestSubmit_InvalidEditID(t *testing.T) {
	svc := testutil.NewFakeService()
	_, _, h := newServer(t, svc)
	svc.ResetCalls()

	w := do(h, http.MethodPost, "/submit", url.Values{"title": {"x"}, "edit_id": {"abc"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.Calls())
}

func TestIndex_ShowsRawTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(3, "", "", "pending")
	_, _, h := newServer(t, svc)

	body := do(h, http.MethodGet, "/", nil).Body.String()

	assert.NotContains(t, body, "(untitled)")
	assert.Contains(t, body, "<td>3</td><td></td><td></td><td>pending</td>")
}

func TestEdit_UnknownTask(t *testing.T) {
	_, _, h := newServer(t, testutil.NewFakeService())

	w := do(h, http.MethodPost, "/tasks/9/edit", url.Values{})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEdit_InvalidID(t *testing.T) {
	_, _, h := newServer(t, testutil.NewFakeService())

	w := do(h, http.MethodPost, "/tasks/abc/delete", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_Redirects(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(7, "gone", "", "pending")
	_, view, h := newServer(t, svc)

	w := do(h, http.MethodPost, "/tasks/7/delete", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, view.Snapshot().Tasks)
}

func TestDelete_FailureStillRedirects(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(7, "stays", "", "pending")
	_, view, h := newServer(t, svc)
	svc.DeleteTaskErr = errors.New("500")

	w := do(h, http.MethodPost, "/tasks/7/delete", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, view.Snapshot().Tasks, 1)
}

func TestHealthzAndMetrics(t *testing.T) {
	_, _, h := newServer(t, testutil.NewFakeService())

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", nil).Code)

	w := do(h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
