package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/erauner12/showcase/internal/model"
	"github.com/go-chi/chi/v5"
)

// createTaskReq is the body of POST /api/tasks
type createTaskReq struct {
	Title string `json:"title"`
}

// reorderTasksReq is the body of POST /api/tasks/reorder
type reorderTasksReq struct {
	Tasks *[]model.Task `json:"tasks"`
}

// ListTasks handles GET /api/tasks
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Tasks.List(r.Context()))
}

// CreateTask handles POST /api/tasks
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body createTaskReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := s.Tasks.Create(r.Context(), body.Title)
	if err = tolerateWriteFailure(r.Context(), err); err != nil {
		writeServiceError(w, r, err, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/{id}
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch model.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := s.Tasks.Update(r.Context(), id, patch)
	if err = tolerateWriteFailure(r.Context(), err); err != nil {
		writeServiceError(w, r, err, "Failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.Tasks.Delete(r.Context(), id)
	if err = tolerateWriteFailure(r.Context(), err); err != nil {
		writeServiceError(w, r, err, "Failed to delete task")
		return
	}
	writeJSON(w, http.StatusOK, successResp{Success: true})
}

// ReorderTasks handles POST /api/tasks/reorder
func (s *Server) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	var body reorderTasksReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Tasks == nil {
		writeError(w, r, http.StatusBadRequest, "Invalid data")
		return
	}

	err := s.Tasks.Reorder(r.Context(), *body.Tasks)
	if err = tolerateWriteFailure(r.Context(), err); err != nil {
		writeServiceError(w, r, err, "Failed to reorder tasks")
		return
	}
	writeJSON(w, http.StatusOK, successResp{Success: true})
}
