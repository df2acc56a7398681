package internal

import (
	"encoding/json"
	"net/http"
	"strings"

	"asset-management-app/internal/auth"
	"asset-management-app/internal/models"
)

func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.SendErrorResponse(w, "Invalid request body", "INVALID_BODY", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		auth.SendErrorResponse(w, "Email and password are required", "MISSING_CREDENTIALS", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	sess, err := s.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		sendOperationError(w, err)
		return
	}

	token, err := s.JWTManager.GenerateToken(sess.Identity, sess.Role)
	if err != nil {
		auth.SendErrorResponse(w, "Failed to issue token", "TOKEN_ERROR", http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, models.LoginResponse{
		Token:    token,
		Identity: sess.Identity,
		Role:     sess.Role,
	})
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.SendErrorResponse(w, "Invalid request body", "INVALID_BODY", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		auth.SendErrorResponse(w, "Email and password are required", "MISSING_CREDENTIALS", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	if err := s.Sessions.Register(ctx, req); err != nil {
		sendOperationError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, map[string]string{
		"message": "Registration successful",
	})
}

// logoutUser ends the session. Token invalidation is client-side, the server
// only clears its session state.
func (s *Server) logoutUser(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	s.Sessions.Logout(r.Context(), sess)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		auth.SendErrorResponse(w, "Authentication required", "NOT_AUTHENTICATED", http.StatusUnauthorized)
		return
	}

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	profile, err := s.Orch.Profile(ctx, sess)
	if err != nil {
		sendOperationError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, profile)
}

// updateProfile merges the submitted fields onto the stored profile, so a
// partial body only touches what it names.
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.SendErrorResponse(w, "Invalid request body", "INVALID_BODY", http.StatusBadRequest)
		return
	}

	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		auth.SendErrorResponse(w, "Authentication required", "NOT_AUTHENTICATED", http.StatusUnauthorized)
		return
	}

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	current, err := s.Orch.Profile(ctx, sess)
	if err != nil {
		sendOperationError(w, err)
		return
	}

	updated := req.Apply(current)
	if err := s.Orch.UpdateProfile(ctx, sess, updated); err != nil {
		sendOperationError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}
