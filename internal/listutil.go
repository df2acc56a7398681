package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"asset-management-app/internal/auth"
	"asset-management-app/internal/gateway"
	"asset-management-app/internal/listview"
	"asset-management-app/internal/models"
	"asset-management-app/internal/session"
)

// parseListState parses q, sort, dir and page from the request into the
// list view state. Unknown sort columns are ignored, page defaults to 1.
func parseListState(r *http.Request) listview.State {
	values := r.URL.Query()
	s := listview.NewState()

	s.Search = strings.TrimSpace(values.Get("q"))

	switch strings.TrimSpace(values.Get("sort")) {
	case listview.ColumnName:
		s.SortColumn = listview.ColumnName
	case listview.ColumnDescription:
		s.SortColumn = listview.ColumnDescription
	}

	if strings.TrimSpace(values.Get("dir")) == string(listview.Desc) {
		s.SortDirection = listview.Desc
	}

	if pageStr := strings.TrimSpace(values.Get("page")); pageStr != "" {
		if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
			s.Page = v
		}
	}

	return s
}

// listResponse is the envelope for the asset list endpoint.
type listResponse struct {
	Items      []models.Asset `json:"items"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	PageWindow []int          `json:"page_window"`
}

func sendListResponse(w http.ResponseWriter, view listview.View, page int) {
	sendJSON(w, http.StatusOK, listResponse{
		Items:      view.Visible,
		Page:       page,
		TotalPages: view.TotalPages,
		PageWindow: view.PageWindow,
	})
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// sendOperationError maps the error taxonomy to HTTP statuses. Remote
// failures collapse into one generic gateway message; local validation
// errors keep their specific code.
func sendOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		auth.SendErrorResponse(w, "Insufficient permissions", "FORBIDDEN", http.StatusForbidden)
	case errors.Is(err, ErrNotAuthenticated):
		auth.SendErrorResponse(w, "Authentication required", "NOT_AUTHENTICATED", http.StatusUnauthorized)
	case errors.Is(err, ErrNoAssetSelected):
		auth.SendErrorResponse(w, "No asset selected for editing", "NO_ASSET_SELECTED", http.StatusBadRequest)
	case errors.Is(err, ErrBusy):
		auth.SendErrorResponse(w, "Operation already in progress", "OPERATION_IN_PROGRESS", http.StatusConflict)
	case errors.Is(err, ErrEmptyResult):
		auth.SendErrorResponse(w, "Backend returned no record", "EMPTY_RESULT", http.StatusBadGateway)
	case errors.Is(err, session.ErrPasswordMismatch):
		auth.SendErrorResponse(w, "Passwords do not match", "PASSWORD_MISMATCH", http.StatusBadRequest)
	case errors.Is(err, session.ErrNoProfileFound):
		auth.SendErrorResponse(w, "No profile found for identity", "NO_PROFILE_FOUND", http.StatusUnauthorized)
	case errors.Is(err, gateway.ErrDuplicateEmail):
		auth.SendErrorResponse(w, "Email already registered", "EMAIL_TAKEN", http.StatusConflict)
	case errors.Is(err, session.ErrProfileCreationFailed):
		auth.SendErrorResponse(w, "Profile creation failed", "PROFILE_CREATION_FAILED", http.StatusBadGateway)
	case errors.Is(err, session.ErrRegistrationFailed):
		auth.SendErrorResponse(w, "Registration failed", "REGISTRATION_FAILED", http.StatusBadGateway)
	case errors.Is(err, gateway.ErrInvalidCredentials):
		auth.SendErrorResponse(w, "Invalid credentials", "INVALID_CREDENTIALS", http.StatusUnauthorized)
	case errors.Is(err, gateway.ErrNotFound):
		auth.SendErrorResponse(w, "Not found", "NOT_FOUND", http.StatusNotFound)
	default:
		auth.SendErrorResponse(w, "Backend request failed", "GATEWAY_ERROR", http.StatusBadGateway)
	}
}
