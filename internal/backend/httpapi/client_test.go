package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/backend/httpapi"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"
)

func newClient(t *testing.T, baseURL string) *httpapi.Client {
	t.Helper()
	c, err := httpapi.NewWithHTTPClient(baseURL, nil, nil)
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }

func TestClient_CRUDAgainstFakeServer(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTasks("Task", 3)
	srv := testutil.NewServer(t, fake)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	page, err := c.ListTasks(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Task 3", page.Items[0].Title, "newest first")

	created, err := c.CreateTask(ctx, service.NewTask{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Nil(t, created.Description)

	done := true
	updated, err := c.UpdateTask(ctx, created.ID, service.TaskPatch{IsDone: &done, Description: strPtr("2 litres")})
	require.NoError(t, err)
	assert.True(t, updated.IsDone)
	assert.Equal(t, "2 litres", updated.DescriptionText())

	got, err := c.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	assert.Equal(t, 3, fake.Count())

	require.NoError(t, c.Health(ctx))
}

func TestClient_SearchEncodesQuery(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("buy milk & eggs")
	fake.AddTask("walk dog")
	srv := testutil.NewServer(t, fake)
	c := newClient(t, srv.URL)

	page, err := c.SearchTasks(context.Background(), "MILK & e", 0, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "buy milk & eggs", page.Items[0].Title)
}

func TestClient_NotFoundCarriesBodyText(t *testing.T) {
	srv := testutil.NewServer(t, testutil.NewFakeService())
	c := newClient(t, srv.URL)

	err := c.DeleteTask(context.Background(), 42)
	require.Error(t, err)

	var rf *service.RequestFailedError
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, http.StatusNotFound, rf.StatusCode)
	assert.Equal(t, testutil.NotFoundBody, rf.Message)
}

func TestClient_EmptyErrorBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv.URL)

	_, err := c.ListTasks(context.Background(), 0, 6)
	require.Error(t, err)
	assert.Equal(t, "Request failed: 502", err.Error())
}

func TestClient_ErrorBodyIsMessageEvenWhenJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, "Title already exists")
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv.URL)

	_, err := c.UpdateTask(context.Background(), 1, service.TaskPatch{Title: strPtr("dup")})
	require.Error(t, err)
	assert.Equal(t, "Title already exists", service.Message(err))
}

func TestClient_NoContentIsNotDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv.URL)

	// A 204 on a call that normally decodes a body must not fail.
	_, err := c.GetTask(context.Background(), 1)
	assert.NoError(t, err)
	assert.NoError(t, c.DeleteTask(context.Background(), 1))
}

func TestClient_SendsJSONHeadersAndRequestID(t *testing.T) {
	var mu sync.Mutex
	var gotMethod, gotPath, gotType, gotReqID string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get(httpapi.RequestIDHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":9,"title":"x","description":null,"is_done":false}`)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv.URL+"/api")

	task, err := c.CreateTask(context.Background(), service.NewTask{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, 9, task.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/tasks", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.NotEmpty(t, gotReqID)
	require.Contains(t, gotBody, "description")
	assert.Nil(t, gotBody["description"], "absent description is sent as null")
}

func TestClient_TransportFailureIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := newClient(t, url)

	_, err := c.ListTasks(context.Background(), 0, 6)
	require.Error(t, err)

	var rf *service.RequestFailedError
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, 0, rf.StatusCode)
	assert.NotEmpty(t, rf.Message)
}

func TestClient_CanceledContext(t *testing.T) {
	srv := testutil.NewServer(t, testutil.NewFakeService())
	c := newClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTasks(ctx, 0, 6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewWithHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := httpapi.NewWithHTTPClient("localhost:8000", nil, nil)
	assert.Error(t, err)
}
