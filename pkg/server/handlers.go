package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/stickypack/pkg/buildinfo"
	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
	"github.com/matzehuels/stickypack/pkg/settings"
)

// uiEvents are the events the panel may report through /v1/events.
var uiEvents = map[pack.Event]bool{
	pack.EventPageLoad:        true,
	pack.EventIconClick:       true,
	pack.EventPropertyChanged: true,
	pack.EventTabChanged:      true,
	pack.EventCustomAction:    true,
}

type packRequest struct {
	Config    json.RawMessage `json:"config,omitempty"`
	Reference *pack.Rect      `json:"reference,omitempty"`
	Source    pack.Source     `json:"source,omitempty"`
}

type layoutResponse struct {
	Anchor  pack.Rect         `json:"anchor"`
	Metrics pack.Metrics      `json:"metrics"`
	Specs   []pack.StickySpec `json:"specs"`
}

type actionRequest struct {
	Items []pack.Item `json:"items"`
}

type eventRequest struct {
	Event pack.Event     `json:"event"`
	Props map[string]any `json:"props,omitempty"`
}

type analyticsState struct {
	Enabled    bool   `json:"enabled"`
	DistinctID string `json:"distinctId,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	anchor, err := s.orch.DefaultValues(r.Context())
	if err != nil {
		writeError(w, hostError(err))
		return
	}
	writeJSON(w, http.StatusOK, anchor)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decode(r, &raw); err != nil {
		writeError(w, err)
		return
	}
	cfg, err := s.mergeConfig(r, raw)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.settings.Save(r.Context(), cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleResetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req packRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	cfg, err := s.mergeConfig(r, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	plan, err := s.orch.Plan(r.Context(), pack.Request{Config: &cfg, Reference: req.Reference})
	if err != nil {
		writeError(w, hostError(err))
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Anchor:  plan.Anchor,
		Metrics: plan.Metrics,
		Specs:   plan.Specs,
	})
}

func (s *Server) handleCreatePack(w http.ResponseWriter, r *http.Request) {
	var req packRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	cfg, err := s.mergeConfig(r, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.orch.CreatePack(r.Context(), pack.Request{
		Config:    &cfg,
		Reference: req.Reference,
		Source:    req.Source,
	})
	if err != nil {
		writeError(w, hostError(err))
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleCustomAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.orch.HandleCustomAction(r.Context(), req.Items)
	if err != nil {
		writeError(w, hostError(err))
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !uiEvents[req.Event] {
		writeError(w, sperrors.New(sperrors.ErrCodeInvalidInput, "unknown event %q", req.Event))
		return
	}
	s.tracker.Emit(r.Context(), req.Event, req.Props)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analyticsState{Enabled: s.tracker.Enabled(), DistinctID: s.tracker.DistinctID()})
}

func (s *Server) handlePutAnalytics(w http.ResponseWriter, r *http.Request) {
	var req analyticsState
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Enabled {
		s.tracker.Enable()
	} else {
		s.tracker.Disable()
	}
	s.handleGetAnalytics(w, r)
}

// mergeConfig validates raw and applies it over the saved configuration.
func (s *Server) mergeConfig(r *http.Request, raw json.RawMessage) (pack.Config, error) {
	base, err := s.settings.Get(r.Context())
	if err != nil {
		return pack.Config{}, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return base, nil
	}
	o, err := settings.Decode(raw)
	if err != nil {
		return pack.Config{}, err
	}
	return base.Apply(o), nil
}

// hostError marks uncoded failures as coming from the board.
func hostError(err error) error {
	if sperrors.GetCode(err) != "" {
		return err
	}
	return sperrors.Wrap(sperrors.ErrCodeHost, err, "board request failed")
}
