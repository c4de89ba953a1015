// Package server exposes the path engine over HTTP.
package server

import (
	"cmp"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/adapter"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/gridgen"
	"github.com/pdrpinto/gridastar/internal/metrics"
)

const (
	maxBodyBytes    = 32 << 20
	maxStepsPerCall = 10_000
)

// ConfigSource yields the live configuration. *config.Loader satisfies it.
type ConfigSource interface {
	Config() *config.Config
}

// Handler holds all HTTP handler dependencies.
type Handler struct {
	cfg      ConfigSource
	logger   *zap.Logger
	sessions *sessionStore
	router   *mux.Router
	// handler is router behind the request logger, so unmatched routes are
	// tagged and logged too.
	handler http.Handler
}

// New creates an HTTP handler and registers all routes.
func New(cfg ConfigSource, logger *zap.Logger) http.Handler {
	return newHandler(cfg, logger)
}

func newHandler(cfg ConfigSource, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{cfg: cfg, logger: logger, sessions: newSessionStore(), router: mux.NewRouter()}

	h.router.HandleFunc("/v1/paths", h.findPath).Methods(http.MethodPost)
	h.router.HandleFunc("/v1/paths/batch", h.findPaths).Methods(http.MethodPost)
	h.router.HandleFunc("/v1/sessions", h.createSession).Methods(http.MethodPost)
	h.router.HandleFunc("/v1/sessions/{id}", h.getSession).Methods(http.MethodGet)
	h.router.HandleFunc("/v1/sessions/{id}", h.deleteSession).Methods(http.MethodDelete)
	h.router.HandleFunc("/v1/sessions/{id}/step", h.stepSession).Methods(http.MethodPost)
	h.router.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	h.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	h.handler = requestLogger(logger)(h.router)

	return h
}

// ServeHTTP dispatches to the matching route.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func cellCount(rows [][]bool) int {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	return n
}

// prepare applies the configured defaults and validates req.
func (h *Handler) prepare(cfg *config.Config, req adapter.Request) (adapter.Prepared, int, error) {
	if n := cellCount(req.Grid); n > cfg.Search.MaxCells {
		metrics.RejectedRequests.WithLabelValues("too_large").Inc()
		return adapter.Prepared{}, http.StatusRequestEntityTooLarge,
			fmt.Errorf("grid has %d cells, limit is %d", n, cfg.Search.MaxCells)
	}
	if req.Algorithm == "" {
		req.Algorithm = cfg.Search.Algorithm
	}
	if req.Frontier == "" {
		req.Frontier = cfg.Search.Frontier
	}
	p, err := adapter.Prepare(req)
	if err != nil {
		metrics.RejectedRequests.WithLabelValues("invalid").Inc()
		return adapter.Prepared{}, http.StatusBadRequest, err
	}
	return p, http.StatusOK, nil
}

// POST /v1/paths: synchronous single search.
func (h *Handler) findPath(w http.ResponseWriter, r *http.Request) {
	var req adapter.Request
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	p, status, err := h.prepare(h.cfg.Config(), req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	resp := p.Run()
	metrics.ObserveSearch(resp.Algorithm, resp.Found, resp.ExecutionTime, resp.Expanded)
	h.logger.Debug("path searched",
		zap.Stringer("start", p.Start),
		zap.Stringer("goal", p.Goal),
		zap.String("algorithm", resp.Algorithm),
		zap.Bool("found", resp.Found),
		zap.Int("expanded", resp.Expanded))
	writeJSON(w, http.StatusOK, resp)
}

type batchRequest struct {
	Queries []adapter.Request `json:"queries"`
}

type batchResponse struct {
	Results []adapter.Response `json:"results"`
	// ExecutionTime covers the whole batch in milliseconds; per-result
	// times are not measured.
	ExecutionTime float64 `json:"executionTime"`
}

// POST /v1/paths/batch: independent searches on a bounded worker pool.
func (h *Handler) findPaths(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	cfg := h.cfg.Config()
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one query")
		return
	}
	if len(req.Queries) > cfg.Search.MaxBatch {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(req.Queries), cfg.Search.MaxBatch))
		return
	}

	queries := make([]gridastar.Query, len(req.Queries))
	algorithms := make([]gridastar.Algorithm, len(req.Queries))
	for i, q := range req.Queries {
		p, status, err := h.prepare(cfg, q)
		if err != nil {
			writeError(w, status, fmt.Sprintf("queries[%d]: %s", i, err))
			return
		}
		queries[i] = gridastar.Query{Grid: p.Grid, Start: p.Start, Goal: p.Goal, Options: p.Options}
		algorithms[i] = p.Algorithm
	}

	startTime := time.Now()
	results, err := gridastar.SearchAll(r.Context(), queries, gridastar.WithWorkers(cfg.Search.Workers))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	elapsed := time.Since(startTime)

	out := batchResponse{Results: make([]adapter.Response, len(results))}
	for i, res := range results {
		out.Results[i] = adapter.FromResult(res, algorithms[i], 0)
		metrics.CountSearch(algorithms[i].String(), res.Found, res.Expanded)
	}
	out.ExecutionTime = float64(elapsed) / float64(time.Millisecond)
	writeJSON(w, http.StatusOK, out)
}

type sessionRequest struct {
	Grid      [][]bool         `json:"grid,omitempty"`
	Start     *gridastar.Point `json:"start,omitempty"`
	Goal      *gridastar.Point `json:"goal,omitempty"`
	Algorithm string           `json:"algorithm,omitempty"`
	Frontier  string           `json:"frontier,omitempty"`
	Generate  gridgen.Params   `json:"generate"`
}

type sessionResponse struct {
	ID        string              `json:"id"`
	Width     int                 `json:"w"`
	Height    int                 `json:"h"`
	Walls     []adapter.PathPoint `json:"walls"`
	Start     adapter.PathPoint   `json:"start"`
	Goal      adapter.PathPoint   `json:"goal"`
	Algorithm string              `json:"algorithm"`
}

// POST /v1/sessions: start a step-through search, generating a grid when
// none is supplied.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	cfg := h.cfg.Config()

	var areq adapter.Request
	if len(req.Grid) == 0 {
		if status, err := checkGenerate(cfg, req.Generate); err != nil {
			writeError(w, status, err.Error())
			return
		}
		sc, err := gridgen.Generate(req.Generate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		areq.Grid = sc.Grid.Rows()
		if req.Start == nil {
			req.Start = &sc.Start
		}
		if req.Goal == nil {
			req.Goal = &sc.Goal
		}
	} else {
		if req.Start == nil || req.Goal == nil {
			writeError(w, http.StatusBadRequest, "start and goal are required with an explicit grid")
			return
		}
		areq.Grid = req.Grid
	}
	areq.StartX, areq.StartY = req.Start.X, req.Start.Y
	areq.EndX, areq.EndY = req.Goal.X, req.Goal.Y
	areq.Algorithm, areq.Frontier = req.Algorithm, req.Frontier

	p, status, err := h.prepare(cfg, areq)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	s := &session{stepper: gridastar.NewStepper(p.Grid, p.Start, p.Goal, p.Options...)}
	if err := h.sessions.add(s, cfg.Sessions.MaxSessions, cfg.Sessions.TTL); err != nil {
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	}
	h.logger.Info("session created", zap.String("session_id", s.id), zap.Int("cells", p.Grid.Cells()))

	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:        s.id,
		Width:     p.Grid.Width(),
		Height:    p.Grid.Height(),
		Walls:     walls(p.Grid),
		Start:     adapter.PathPoint{X: p.Start.X, Y: p.Start.Y},
		Goal:      adapter.PathPoint{X: p.Goal.X, Y: p.Goal.Y},
		Algorithm: p.Algorithm.String(),
	})
}

// checkGenerate refuses generated grids above search.max_cells before any
// cell is allocated. Out-of-range sides are left to gridgen's validation.
func checkGenerate(cfg *config.Config, p gridgen.Params) (int, error) {
	p = p.Defaults()
	if p.Width > gridgen.MaxSide || p.Height > gridgen.MaxSide {
		return http.StatusOK, nil
	}
	if n := p.Cells(); n > int64(cfg.Search.MaxCells) {
		metrics.RejectedRequests.WithLabelValues("too_large").Inc()
		return http.StatusRequestEntityTooLarge,
			fmt.Errorf("generated grid has %d cells, limit is %d", n, cfg.Search.MaxCells)
	}
	return http.StatusOK, nil
}

type snapshotResponse struct {
	ID      string              `json:"id"`
	Step    int                 `json:"step"`
	State   string              `json:"state"`
	Current *adapter.PathPoint  `json:"current,omitempty"`
	Open    []adapter.PathPoint `json:"open"`
	Closed  []adapter.PathPoint `json:"closed"`
	Done    bool                `json:"done"`
	Found   bool                `json:"found"`
	Path    []adapter.PathPoint `json:"path,omitempty"`
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := mux.Vars(r)["id"]
	s, err := h.sessions.get(id, h.cfg.Config().Sessions.TTL)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return s, true
}

// GET /v1/sessions/{id}: current snapshot without advancing.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	snap := s.stepper.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, toSnapshotResponse(s.id, snap))
}

// POST /v1/sessions/{id}/step?n=N: advance up to N expansions (default 1).
func (h *Handler) stepSession(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxStepsPerCall {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("n must be between 1 and %d", maxStepsPerCall))
			return
		}
		n = v
	}
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	var snap gridastar.StepSnapshot
	for i := 0; i < n; i++ {
		snap = s.stepper.Step()
		metrics.SessionSteps.Inc()
		if snap.Done() {
			break
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, toSnapshotResponse(s.id, snap))
}

// DELETE /v1/sessions/{id}
func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.sessions.remove(id) {
		writeError(w, http.StatusNotFound, errSessionNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.sessions.len(),
	})
}

func toSnapshotResponse(id string, snap gridastar.StepSnapshot) snapshotResponse {
	resp := snapshotResponse{
		ID:     id,
		Step:   snap.StepIndex,
		State:  snap.State.String(),
		Open:   sortedPoints(snap.Open),
		Closed: sortedPoints(snap.Closed),
		Done:   snap.Done(),
		Found:  snap.State == gridastar.Found,
	}
	if snap.HasCurrent {
		resp.Current = &adapter.PathPoint{X: snap.Current.X, Y: snap.Current.Y}
	}
	if resp.Found {
		resp.Path = adapter.Points(snap.Path)
	}
	return resp
}

// sortedPoints lists the set in row-major order so responses are stable.
func sortedPoints(set map[gridastar.Point]bool) []adapter.PathPoint {
	pts := make([]adapter.PathPoint, 0, len(set))
	for p, ok := range set {
		if ok {
			pts = append(pts, adapter.PathPoint{X: p.X, Y: p.Y})
		}
	}
	slices.SortFunc(pts, func(a, b adapter.PathPoint) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return pts
}

func walls(g *gridastar.Grid) []adapter.PathPoint {
	var out []adapter.PathPoint
	for y, row := range g.Rows() {
		for x, blocked := range row {
			if blocked {
				out = append(out, adapter.PathPoint{X: x, Y: y})
			}
		}
	}
	if out == nil {
		out = []adapter.PathPoint{}
	}
	return out
}
