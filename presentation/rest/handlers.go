package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"taskpilot/domain/entities"
)

type processRequest struct {
	Command string `json:"command"`
}

// taskRequest is the JSON body for create and update. Pointers distinguish
// "absent" from "set to zero value" on partial updates.
type taskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Priority    *string  `json:"priority"`
	Status      *string  `json:"status"`
	DueDate     *string  `json:"due_date"`
	Tags        []string `json:"tags"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Command == "" {
		writeError(w, http.StatusBadRequest, "command is required")
		return
	}

	result := s.processor.Process(r.Context(), req.Command)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter := &entities.TaskFilter{}
	hasFilter := false

	if v := r.URL.Query().Get("status"); v != "" {
		status, ok := entities.ParseStatus(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(v))
			return
		}
		filter.Status = &status
		hasFilter = true
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		priority, ok := entities.ParsePriority(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown priority "+strconv.Quote(v))
			return
		}
		filter.Priority = &priority
		hasFilter = true
	}
	if v := r.URL.Query().Get("tag"); v != "" {
		filter.Tag = v
		hasFilter = true
	}
	if !hasFilter {
		filter = nil
	}

	writeJSON(w, http.StatusOK, s.store.List(filter))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}
	if req.Title == nil || *req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	fields := entities.TaskFields{Title: *req.Title, Tags: req.Tags}
	if req.Description != nil {
		fields.Description = *req.Description
	}
	if req.Priority != nil {
		priority, ok := entities.ParsePriority(*req.Priority)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown priority "+strconv.Quote(*req.Priority))
			return
		}
		fields.Priority = priority
	}
	if req.Status != nil {
		status, ok := entities.ParseStatus(*req.Status)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(*req.Status))
			return
		}
		fields.Status = status
	}
	if req.DueDate != nil {
		due, err := entities.ParseDate(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be "+entities.DateLayout)
			return
		}
		fields.DueDate = &due
	}

	task, err := s.store.Create(fields)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task, err := s.store.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	patch := entities.TaskPatch{Title: req.Title, Description: req.Description, Tags: req.Tags}
	if req.Priority != nil {
		priority, ok := entities.ParsePriority(*req.Priority)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown priority "+strconv.Quote(*req.Priority))
			return
		}
		patch.Priority = &priority
	}
	if req.Status != nil {
		status, ok := entities.ParseStatus(*req.Status)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(*req.Status))
			return
		}
		patch.Status = &status
	}
	if req.DueDate != nil {
		due, err := entities.ParseDate(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be "+entities.DateLayout)
			return
		}
		patch.DueDate = &due
	}
	if patch.Empty() {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	task, err := s.store.Update(id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (taskRequest, bool) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return taskRequest{}, false
	}
	return req, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "task id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
