package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/service"
)

// NewServer starts an httptest.Server that speaks the task service's HTTP
// contract and delegates to svc. The server is closed when the test ends.
func NewServer(t testing.TB, svc service.Service) *httptest.Server {
	t.Helper()

	h := &serviceHandler{svc: svc}
	r := chi.NewRouter()
	r.Get("/health", h.health)
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/search", h.search)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type serviceHandler struct {
	svc service.Service
}

func (h *serviceHandler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Health(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *serviceHandler) list(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	page, err := h.svc.ListTasks(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *serviceHandler) search(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	page, err := h.svc.SearchTasks(r.Context(), r.URL.Query().Get("query"), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *serviceHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *serviceHandler) create(w http.ResponseWriter, r *http.Request) {
	var in service.NewTask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"detail":"invalid body"}`, http.StatusUnprocessableEntity)
		return
	}
	task, err := h.svc.CreateTask(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *serviceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var patch service.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, `{"detail":"invalid body"}`, http.StatusUnprocessableEntity)
		return
	}
	task, err := h.svc.UpdateTask(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *serviceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pageParams(w http.ResponseWriter, r *http.Request) (skip, limit int, ok bool) {
	skip, limit = 0, 50
	q := r.URL.Query()
	var err error
	if v := q.Get("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil {
			http.Error(w, `{"detail":"invalid skip"}`, http.StatusUnprocessableEntity)
			return 0, 0, false
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			http.Error(w, `{"detail":"invalid limit"}`, http.StatusUnprocessableEntity)
			return 0, 0, false
		}
	}
	return skip, limit, true
}

func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"detail":"invalid task id"}`, http.StatusUnprocessableEntity)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error message as the raw body, the way the
// service reports failures.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var rf *service.RequestFailedError
	if errors.As(err, &rf) && rf.StatusCode != 0 {
		status = rf.StatusCode
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(service.Message(err)))
}
