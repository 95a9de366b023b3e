package main

import (
	"errors"
	"net/http"

	"github.com/quantedu/fundboard/pkg/auth"
	"github.com/quantedu/fundboard/pkg/store"
)

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), req)
	if errors.Is(err, auth.ErrDuplicateAccount) {
		s.writeError(w, http.StatusConflict, "username or email already in use")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Registration failed")
		s.writeError(w, http.StatusInternalServerError, "failed to register account")
		return
	}

	s.writeData(w, http.StatusCreated, user)
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Login failed")
		s.writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	s.logActivity(r, session.User.ID, "login", nil)
	s.writeData(w, http.StatusOK, session)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		s.logger.Error().Err(err).Msg("Logout failed")
		s.writeError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	s.writeData(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, currentUser(r))
}

func (s *server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    *string `json:"email"`
		FullName *string `json:"full_name"`
		School   *string `json:"school"`
		Grade    *string `json:"grade"`
		Major    *string `json:"major"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Absent fields keep their stored values.
	fields := map[string]string{}
	for column, value := range map[string]*string{
		"email":     req.Email,
		"full_name": req.FullName,
		"school":    req.School,
		"grade":     req.Grade,
		"major":     req.Major,
	} {
		if value != nil {
			fields[column] = *value
		}
	}

	user := currentUser(r)
	err := s.auth.UpdateProfile(r.Context(), user.ID, fields)
	switch {
	case errors.Is(err, store.ErrNoFields):
		s.writeError(w, http.StatusBadRequest, "no fields to update")
		return
	case errors.Is(err, auth.ErrDuplicateAccount):
		s.writeError(w, http.StatusConflict, "email already in use")
		return
	case errors.Is(err, auth.ErrInvalidEmail):
		s.writeError(w, http.StatusBadRequest, "invalid email address")
		return
	case err != nil:
		s.logger.Error().Err(err).Msg("Profile update failed")
		s.writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	updated, err := s.store.UserByID(r.Context(), user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to reload profile")
		s.writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	updated.PasswordHash = ""
	s.writeData(w, http.StatusOK, updated)
}

func (s *server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.auth.ChangePassword(r.Context(), currentUser(r).ID, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeError(w, http.StatusBadRequest, "current password is incorrect")
		return
	case errors.Is(err, auth.ErrWeakPassword):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error().Err(err).Msg("Password change failed")
		s.writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	s.writeData(w, http.StatusOK, map[string]string{"status": "password changed"})
}
