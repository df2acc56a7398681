package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asset-management-app/internal/auth"
	"asset-management-app/internal/listview"
	"asset-management-app/internal/models"
	"asset-management-app/pkg/exporter"

	"github.com/go-chi/chi/v5"
)

// listAssets refreshes the mirror from the gateway and applies the client's
// list state (search, sort, page) to it.
func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	state := parseListState(r)

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	assets, err := s.Orch.Refresh(ctx, state.Search)
	if err != nil {
		sendOperationError(w, err)
		return
	}
	s.Metrics.SetAssetsInMemory(len(assets))

	// Search already ran server-side, the view only sorts and slices.
	view := listview.Apply(assets, listview.State{
		SortColumn:    state.SortColumn,
		SortDirection: state.SortDirection,
		Page:          state.Page,
		PageSize:      state.PageSize,
	})
	sendListResponse(w, view, state.Page)
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		auth.SendErrorResponse(w, "Invalid asset id", "INVALID_ID", http.StatusBadRequest)
		return
	}

	asset, ok := s.Orch.Get(id)
	if !ok {
		// not mirrored yet, fall back to a refresh
		ctx, cancel := s.gatewayCtx(r)
		defer cancel()
		if _, err := s.Orch.Refresh(ctx, ""); err != nil {
			sendOperationError(w, err)
			return
		}
		if asset, ok = s.Orch.Get(id); !ok {
			auth.SendErrorResponse(w, "Asset not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
	}

	sendJSON(w, http.StatusOK, asset)
}

func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.SendErrorResponse(w, "Invalid request body", "INVALID_BODY", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		auth.SendErrorResponse(w, "Asset name is required", "NAME_REQUIRED", http.StatusBadRequest)
		return
	}

	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		auth.SendErrorResponse(w, "Authentication required", "NOT_AUTHENTICATED", http.StatusUnauthorized)
		return
	}

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	created, err := s.Orch.CreateAsset(ctx, sess, req)
	if err != nil {
		sendOperationError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, created)
}

// updateAsset stages the requested change on the mirrored record, then
// saves it through the gateway.
func (s *Server) updateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		auth.SendErrorResponse(w, "Invalid asset id", "INVALID_ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.SendErrorResponse(w, "Invalid request body", "INVALID_BODY", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		auth.SendErrorResponse(w, "Asset name is required", "NAME_REQUIRED", http.StatusBadRequest)
		return
	}

	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		auth.SendErrorResponse(w, "Authentication required", "NOT_AUTHENTICATED", http.StatusUnauthorized)
		return
	}

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	asset, ok := s.Orch.Get(id)
	if !ok {
		if _, err := s.Orch.Refresh(ctx, ""); err != nil {
			sendOperationError(w, err)
			return
		}
		if asset, ok = s.Orch.Get(id); !ok {
			auth.SendErrorResponse(w, "Asset not found", "NOT_FOUND", http.StatusNotFound)
			return
		}
	}

	asset.Name = req.Name
	asset.Description = req.Description
	if err := s.Orch.EditAsset(sess, asset); err != nil {
		sendOperationError(w, err)
		return
	}

	updated, err := s.Orch.SaveEdit(ctx, sess)
	if err != nil {
		sendOperationError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		auth.SendErrorResponse(w, "Invalid asset id", "INVALID_ID", http.StatusBadRequest)
		return
	}

	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		auth.SendErrorResponse(w, "Authentication required", "NOT_AUTHENTICATED", http.StatusUnauthorized)
		return
	}

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	if err := s.Orch.DeleteAsset(ctx, sess, id); err != nil {
		sendOperationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// exportAssets streams the full (optionally filtered) asset set as an xlsx
// workbook.
func (s *Server) exportAssets(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	ctx, cancel := s.gatewayCtx(r)
	defer cancel()

	assets, err := s.Orch.Refresh(ctx, search)
	if err != nil {
		sendOperationError(w, err)
		return
	}
	s.Metrics.SetAssetsInMemory(len(assets))

	filename := fmt.Sprintf("assets-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := exporter.WriteAssets(w, assets); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
