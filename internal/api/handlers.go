package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wilson-adhikari/Insight-Bridge/internal/httputil"
	"github.com/wilson-adhikari/Insight-Bridge/internal/ingest"
	"github.com/wilson-adhikari/Insight-Bridge/internal/monitoring"
	"github.com/wilson-adhikari/Insight-Bridge/internal/profile"
	"github.com/wilson-adhikari/Insight-Bridge/internal/recommend"
	"github.com/wilson-adhikari/Insight-Bridge/internal/render"
	"github.com/wilson-adhikari/Insight-Bridge/internal/session"
	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

// profileResponse is the payload of a successful profiling pass.
type profileResponse struct {
	SessionID       string                     `json:"session_id,omitempty"`
	Profile         *profile.DatasetProfile    `json:"profile"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// readTable parses the request body as CSV. The dataset name comes
// from the ?name= query parameter, defaulting to "upload".
func (s *Server) readTable(r *http.Request) (*table.Table, error) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}
	return ingest.ReadCSV(name, r.Body)
}

// handleProfile profiles an uploaded CSV body and returns the profile
// plus the ranked recommendation batch. The run is persisted when a
// store is configured.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	t, err := s.readTable(r)
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("failed to parse csv: %v", err))
		return
	}

	profiler := profile.NewProfiler(s.engine.Config().GetSampleRowLimit())
	dp, err := profiler.Profile(t)
	if errors.Is(err, profile.ErrEmptyDataset) {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("profiling failed: %v", err))
		return
	}

	for _, warning := range dp.Warnings {
		monitoring.Logf("profiling %s: %s", dp.Dataset, warning)
	}

	recs := s.engine.Recommend(dp)

	resp := profileResponse{Profile: dp, Recommendations: recs}
	if s.store != nil {
		id, err := s.store.SaveRun(dp, recs)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to persist run: %v", err))
			return
		}
		resp.SessionID = id
	}

	httputil.WriteJSONOK(w, resp)
}

// handlePreview profiles an uploaded CSV body and renders one of the
// resulting recommendations as an HTML chart. The ?index= parameter
// selects which recommendation, defaulting to the top one.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	t, err := s.readTable(r)
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("failed to parse csv: %v", err))
		return
	}

	profiler := profile.NewProfiler(s.engine.Config().GetSampleRowLimit())
	dp, err := profiler.Profile(t)
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("profiling failed: %v", err))
		return
	}

	recs := s.engine.Recommend(dp)
	if len(recs) == 0 {
		httputil.NotFound(w, "no chart recommendations for this dataset")
		return
	}

	index := 0
	if idx := r.URL.Query().Get("index"); idx != "" {
		parsed, err := strconv.Atoi(idx)
		if err != nil || parsed < 0 || parsed >= len(recs) {
			httputil.BadRequest(w, fmt.Sprintf("invalid 'index' parameter (batch has %d)", len(recs)))
			return
		}
		index = parsed
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, recs[index], t); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
}

// handleSessions lists stored runs, or returns one run in full when
// ?id= is given.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.NotFound(w, "session store not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if id := r.URL.Query().Get("id"); id != "" {
			run, err := s.store.Run(id)
			if errors.Is(err, session.ErrNotFound) {
				httputil.NotFound(w, err.Error())
				return
			}
			if err != nil {
				httputil.InternalServerError(w, fmt.Sprintf("failed to fetch run: %v", err))
				return
			}
			httputil.WriteJSONOK(w, run)
			return
		}

		runs, err := s.store.Runs()
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to list runs: %v", err))
			return
		}
		if runs == nil {
			runs = []session.RunSummary{}
		}
		httputil.WriteJSONOK(w, runs)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			httputil.BadRequest(w, "missing 'id' parameter")
			return
		}
		err := s.store.DeleteRun(id)
		if errors.Is(err, session.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to delete run: %v", err))
			return
		}
		httputil.WriteJSONOK(w, map[string]string{"deleted": id})

	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleConfig reports the active engine thresholds.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	cfg := s.engine.Config()
	httputil.WriteJSONOK(w, map[string]any{
		"sample_row_limit":   cfg.GetSampleRowLimit(),
		"confidence_floor":   cfg.GetConfidenceFloor(),
		"bar_max_categories": cfg.GetBarMaxCategories(),
		"pie_max_categories": cfg.GetPieMaxCategories(),
		"histogram_baseline": cfg.GetHistogramBaseline(),
		"box_spread_ratio":   cfg.GetBoxSpreadRatio(),
	})
}
