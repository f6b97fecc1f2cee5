// Package service exposes drafts over a JSON HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/ai/decision"
	"github.com/mcdev12/mockdraft/go/internal/ai/profiles"
	"github.com/mcdev12/mockdraft/go/internal/draft/engine"
	"github.com/mcdev12/mockdraft/go/internal/draft/orchestrator"
	"github.com/mcdev12/mockdraft/go/internal/draft/store"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

const defaultCandidateLimit = 10

// DraftApp defines what the service needs from the orchestrator
type DraftApp interface {
	CreateDraft(ctx context.Context, params engine.InitParams) (*models.DraftState, error)
	GetDraft(ctx context.Context, draftID uuid.UUID) (*models.DraftState, error)
	MakePick(ctx context.Context, draftID, teamID uuid.UUID, playerID string) (*models.DraftState, *models.DraftPick, error)
	RunAITurns(ctx context.Context, draftID uuid.UUID) (*models.DraftState, []models.DraftPick, error)
	Undo(ctx context.Context, draftID uuid.UUID) (*models.DraftState, error)
	TopCandidates(ctx context.Context, draftID, teamID uuid.UUID, n int) ([]decision.Score, error)
	Explain(ctx context.Context, draftID, teamID uuid.UUID, playerID string) (decision.Explanation, error)
}

// ProfileLister lists the registered AI profiles
type ProfileLister interface {
	All() []models.AIProfile
}

// Service implements the draft HTTP handlers
type Service struct {
	app      DraftApp
	profiles ProfileLister
	players  []models.Player
}

// NewService creates a Service. Every new draft starts from a copy of players.
func NewService(app DraftApp, profiles ProfileLister, players []models.Player) *Service {
	return &Service{
		app:      app,
		profiles: profiles,
		players:  players,
	}
}

// Register adds the draft routes to mux.
func (s *Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/drafts", s.CreateDraft)
	mux.HandleFunc("GET /api/drafts/{id}", s.GetDraft)
	mux.HandleFunc("POST /api/drafts/{id}/picks", s.MakePick)
	mux.HandleFunc("POST /api/drafts/{id}/undo", s.Undo)
	mux.HandleFunc("POST /api/drafts/{id}/ai-picks", s.RunAIPicks)
	mux.HandleFunc("GET /api/drafts/{id}/candidates", s.Candidates)
	mux.HandleFunc("GET /api/drafts/{id}/explain", s.Explain)
	mux.HandleFunc("GET /api/profiles", s.ListProfiles)
}

type draftSettings struct {
	NumTeams      int                    `json:"numTeams"`
	NumRounds     int                    `json:"numRounds"`
	ScoringFormat string                 `json:"scoringFormat"`
	RosterSlots   *models.RosterSettings `json:"rosterSlots"` // nil uses the default lineup
}

type createDraftRequest struct {
	UserName          string        `json:"userName"`
	UserDraftPosition int           `json:"userDraftPosition"`
	Settings          draftSettings `json:"settings"`
	AIProfileIDs      []string      `json:"aiProfileIds"`
}

type makePickRequest struct {
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
}

type pickResponse struct {
	Draft *models.DraftState `json:"draft"`
	Pick  *models.DraftPick  `json:"pick"`
}

type aiPicksResponse struct {
	Draft *models.DraftState `json:"draft"`
	Picks []models.DraftPick `json:"picks"`
}

type candidatesResponse struct {
	Candidates []decision.Score `json:"candidates"`
}

type profilesResponse struct {
	Profiles []models.AIProfile `json:"profiles"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// CreateDraft handles POST /api/drafts
func (s *Service) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}

	params := engine.InitParams{
		UserName:          req.UserName,
		UserDraftPosition: req.UserDraftPosition,
		Settings: models.DraftSettings{
			NumTeams:      req.Settings.NumTeams,
			NumRounds:     req.Settings.NumRounds,
			ScoringFormat: models.ScoringFormat(req.Settings.ScoringFormat),
		},
		Players:      append([]models.Player(nil), s.players...),
		AIProfileIDs: req.AIProfileIDs,
	}
	if req.Settings.RosterSlots != nil {
		params.Settings.RosterSlots = *req.Settings.RosterSlots
	}

	state, err := s.app.CreateDraft(r.Context(), params)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// GetDraft handles GET /api/drafts/{id}
func (s *Service) GetDraft(w http.ResponseWriter, r *http.Request) {
	draftID, ok := pathID(w, r)
	if !ok {
		return
	}

	state, err := s.app.GetDraft(r.Context(), draftID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// MakePick handles POST /api/drafts/{id}/picks
func (s *Service) MakePick(w http.ResponseWriter, r *http.Request) {
	draftID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req makePickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid teamId")
		return
	}
	if req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "playerId is required")
		return
	}

	state, pick, err := s.app.MakePick(r.Context(), draftID, teamID, req.PlayerID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{Draft: state, Pick: pick})
}

// Undo handles POST /api/drafts/{id}/undo
func (s *Service) Undo(w http.ResponseWriter, r *http.Request) {
	draftID, ok := pathID(w, r)
	if !ok {
		return
	}

	state, err := s.app.Undo(r.Context(), draftID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// RunAIPicks handles POST /api/drafts/{id}/ai-picks
func (s *Service) RunAIPicks(w http.ResponseWriter, r *http.Request) {
	draftID, ok := pathID(w, r)
	if !ok {
		return
	}

	state, picks, err := s.app.RunAITurns(r.Context(), draftID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if picks == nil {
		picks = []models.DraftPick{}
	}
	writeJSON(w, http.StatusOK, aiPicksResponse{Draft: state, Picks: picks})
}

// Candidates handles GET /api/drafts/{id}/candidates?teamId=&limit=
func (s *Service) Candidates(w http.ResponseWriter, r *http.Request) {
	draftID, ok := pathID(w, r)
	if !ok {
		return
	}
	teamID, ok := queryID(w, r, "teamId")
	if !ok {
		return
	}

	limit := defaultCandidateLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "limit must be a positive integer")
			return
		}
		limit = n
	}

	scores, err := s.app.TopCandidates(r.Context(), draftID, teamID, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidatesResponse{Candidates: scores})
}

// Explain handles GET /api/drafts/{id}/explain?teamId=&playerId=
func (s *Service) Explain(w http.ResponseWriter, r *http.Request) {
	draftID, ok := pathID(w, r)
	if !ok {
		return
	}
	teamID, ok := queryID(w, r, "teamId")
	if !ok {
		return
	}
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "playerId is required")
		return
	}

	exp, err := s.app.Explain(r.Context(), draftID, teamID, playerID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// ListProfiles handles GET /api/profiles
func (s *Service) ListProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profilesResponse{Profiles: s.profiles.All()})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid draft id")
		return uuid.Nil, false
	}
	return id, true
}

func queryID(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.URL.Query().Get(key))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid "+key)
		return uuid.Nil, false
	}
	return id, true
}

// fail maps domain errors onto HTTP statuses.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, err error) {
	var pe *engine.PickError
	switch {
	case errors.As(err, &pe):
		status := http.StatusConflict
		if pe.Code == engine.CodeTeamNotFound || pe.Code == engine.CodePlayerNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, string(pe.Code), pe.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "DRAFT_NOT_FOUND", err.Error())
	case errors.Is(err, orchestrator.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, string(engine.CodeTeamNotFound), err.Error())
	case errors.Is(err, engine.ErrInvalidParams), errors.Is(err, profiles.ErrProfileNotFound):
		writeError(w, http.StatusBadRequest, "INVALID_PARAMS", err.Error())
	case errors.Is(err, orchestrator.ErrNoAvailablePlayers):
		writeError(w, http.StatusConflict, "NO_AVAILABLE_PLAYERS", err.Error())
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// AccessLog attaches the global logger to each request and logs every
// request with its status, size and duration.
func AccessLog(next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})
	return hlog.NewHandler(log.Logger)(access(next))
}
