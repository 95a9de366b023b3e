package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quantedu/fundboard/pkg/cases"
	"github.com/quantedu/fundboard/pkg/store"
)

func (s *server) handleListCases(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, cases.List())
}

func (s *server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	c, err := cases.Get(id)
	if errors.Is(err, cases.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "case not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("case", id).Msg("Failed to load case")
		s.writeError(w, http.StatusInternalServerError, "failed to load case")
		return
	}

	html, err := cases.RenderHTML(id)
	if err != nil {
		s.logger.Error().Err(err).Str("case", id).Msg("Failed to render case")
		s.writeError(w, http.StatusInternalServerError, "failed to render case")
		return
	}

	s.writeData(w, http.StatusOK, map[string]any{
		"case": c,
		"html": html,
	})
}

func (s *server) handleSubmitExercise(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	var req struct {
		QuestionID string `json:"question_id"`
		Answer     int    `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	correct, err := cases.Grade(caseID, req.QuestionID, req.Answer)
	switch {
	case errors.Is(err, cases.ErrNotFound), errors.Is(err, cases.ErrQuestionNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := currentUser(r)
	sub := store.Submission{
		CaseID:     caseID,
		QuestionID: req.QuestionID,
		Answer:     strconv.Itoa(req.Answer),
		Correct:    &correct,
	}
	if err := s.store.SubmitExercise(r.Context(), user.ID, sub); err != nil {
		s.logger.Error().Err(err).Msg("Failed to record submission")
		s.writeError(w, http.StatusInternalServerError, "failed to record submission")
		return
	}

	s.logActivity(r, user.ID, "exercise", map[string]any{
		"case":     caseID,
		"question": req.QuestionID,
		"correct":  correct,
	})
	s.writeData(w, http.StatusOK, map[string]any{"correct": correct})
}

func (s *server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.Submissions(r.Context(), currentUser(r).ID, r.URL.Query().Get("case"))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list submissions")
		s.writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	s.writeData(w, http.StatusOK, subs)
}

func (s *server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.store.ProgressFor(r.Context(), currentUser(r).ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load progress")
		s.writeError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	s.writeData(w, http.StatusOK, progress)
}

func (s *server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Module string   `json:"module"`
		Lesson string   `json:"lesson"`
		Status string   `json:"status"`
		Score  *float64 `json:"score"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Module == "" || req.Lesson == "" {
		s.writeError(w, http.StatusBadRequest, "module and lesson are required")
		return
	}
	switch req.Status {
	case "", store.StatusNotStarted, store.StatusInProgress, store.StatusCompleted:
	default:
		s.writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	user := currentUser(r)
	upd := store.ProgressUpdate{
		Module: req.Module,
		Lesson: req.Lesson,
		Status: req.Status,
		Score:  req.Score,
	}
	if err := s.store.UpdateProgress(r.Context(), user.ID, upd); err != nil {
		s.logger.Error().Err(err).Msg("Failed to update progress")
		s.writeError(w, http.StatusInternalServerError, "failed to update progress")
		return
	}

	s.logActivity(r, user.ID, "lesson", map[string]any{
		"module": req.Module,
		"lesson": req.Lesson,
		"status": req.Status,
	})
	s.writeData(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *server) handleModuleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.ModuleStatsFor(r.Context(), currentUser(r).ID, r.PathValue("module"))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load module stats")
		s.writeError(w, http.StatusInternalServerError, "failed to load module stats")
		return
	}
	s.writeData(w, http.StatusOK, stats)
}

func (s *server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.Notes(r.Context(), currentUser(r).ID, r.URL.Query().Get("module"))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list notes")
		s.writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	s.writeData(w, http.StatusOK, notes)
}

func (s *server) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Module  string `json:"module"`
		Lesson  string `json:"lesson"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Module == "" || req.Content == "" {
		s.writeError(w, http.StatusBadRequest, "module and content are required")
		return
	}

	user := currentUser(r)
	id, err := s.store.SaveNote(r.Context(), user.ID, req.Module, req.Lesson, req.Content)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save note")
		s.writeError(w, http.StatusInternalServerError, "failed to save note")
		return
	}

	s.logActivity(r, user.ID, "note", map[string]any{"module": req.Module})
	s.writeData(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *server) handleActivity(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 7)
	if err != nil || days <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid days")
		return
	}

	user := currentUser(r)
	events, err := s.store.Activities(r.Context(), user.ID, days)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load activity")
		s.writeError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	daily, err := s.store.DailyActivity(r.Context(), user.ID, days)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load daily activity")
		s.writeError(w, http.StatusInternalServerError, "failed to load daily activity")
		return
	}

	s.writeData(w, http.StatusOK, map[string]any{
		"events": events,
		"daily":  daily,
	})
}
