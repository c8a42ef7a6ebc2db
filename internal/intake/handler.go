package intake

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// HandleTurn — one conversational turn from the UI.
func (h *Handler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.svc.HandleTurn(r.Context(), sessionID, payload.Input)
	switch {
	case errors.Is(err, ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "input must not be empty")
		return
	case errors.Is(err, ErrUpstream):
		writeError(w, http.StatusBadGateway, "assistant is unavailable, try again")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "could not process turn")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		TurnResult
		Step int `json:"step"`
	}{TurnResult: result, Step: Step(result.State)})
}

func (h *Handler) SetRoles(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Roles []string `json:"roles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	state, err := h.svc.SetRoles(r.Context(), sessionID, payload.Roles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not save roles")
		return
	}
	writeState(w, state)
}

func (h *Handler) SaveOrg(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Name     *string `json:"name"`
		Country  *string `json:"country"`
		Industry *string `json:"industry"`
		Size     *string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	state, err := h.svc.SaveOrg(r.Context(), sessionID, OrgPatch{
		Name:     payload.Name,
		Country:  payload.Country,
		Industry: payload.Industry,
		Size:     payload.Size,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not save organisation")
		return
	}
	writeState(w, state)
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := h.svc.GetState(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load state")
		return
	}
	writeState(w, state)
}

func writeState(w http.ResponseWriter, state SessionState) {
	writeJSON(w, http.StatusOK, struct {
		State SessionState `json:"state"`
		Step  int          `json:"step"`
	}{State: state, Step: Step(state)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
