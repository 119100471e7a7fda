package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	appexport "github.com/bryanwahyu/startup-radar/internal/application/export"
	apprecommend "github.com/bryanwahyu/startup-radar/internal/application/recommend"
	appscoring "github.com/bryanwahyu/startup-radar/internal/application/scoring"
	domai "github.com/bryanwahyu/startup-radar/internal/domain/ai"
	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/middleware"
)

type Router struct {
	scoringSvc   *appscoring.Service
	recommendSvc *apprecommend.Service
	exportSvc    *appexport.Service
}

func NewRouter(scoringSvc *appscoring.Service, recommendSvc *apprecommend.Service, exportSvc *appexport.Service) http.Handler {
	r := &Router{scoringSvc: scoringSvc, recommendSvc: recommendSvc, exportSvc: exportSvc}
	mux := chi.NewRouter()

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/passes", r.wrap(r.handleStartPass))
		rt.Get("/passes/{id}", r.wrap(r.handleGetPass))
		rt.Get("/evaluations/latest", r.wrap(r.handleLatest))
		rt.Get("/evaluations/{startupID}", r.wrap(r.handleGet))
		rt.Get("/evaluations", r.wrap(r.handleList))
		rt.Post("/evaluations/export", r.wrap(r.handleExport))
		rt.Get("/feed/{userID}", r.wrap(r.handleFeed))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/{tenant}/passes
// Body: {"validate": true, "resume_pass_id": "<id>"}
// Starts a catalog scoring pass in the background and answers immediately.
func (r *Router) handleStartPass(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		Validate     bool   `json:"validate"`
		ResumePassID string `json:"resume_pass_id"`
	}
	if req.Body != nil && req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return err
		}
	}

	st := r.scoringSvc.StartPass(appscoring.StartPassCommand{
		TenantID:     tenant,
		Validate:     body.Validate,
		ResumePassID: body.ResumePassID,
	})

	// 🚀 Jalankan di background, biar jalan sampai selesai
	go func() {
		middleware.IncrementPasses()
		middleware.IncrementPassesRunning()
		defer middleware.DecrementPassesRunning()
		if err := r.scoringSvc.RunPassUntilDone(st); err != nil {
			middleware.IncrementPassesFailed()
			log.Printf("background pass error tenant=%s pass=%s: %v", tenant, st.ID, err)
			return
		}
		log.Printf("pass finished tenant=%s pass=%s", tenant, st.ID)
	}()

	// 🔙 langsung balikin respons ke client
	resp := map[string]any{
		"status":  "queued",
		"tenant":  tenant,
		"pass_id": st.ID,
		"message": "scoring pass started in background",
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

// GET /v1/{tenant}/passes/{id}
func (r *Router) handleGetPass(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidatePassID(id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	st, ok := r.scoringSvc.Pass(id)
	if !ok {
		http.Error(w, "pass not found", http.StatusNotFound)
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(st)
}

// GET /v1/{tenant}/evaluations/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.scoringSvc.Latest(req.Context(), tenant, limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/evaluations/{startupID}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "startupID")

	ev, err := r.scoringSvc.Get(req.Context(), tenant, startup.ID(id))
	if err != nil {
		return err
	}
	if ev == nil {
		http.Error(w, "no evaluation for startup", http.StatusNotFound)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(ev)
}

// GET /v1/{tenant}/evaluations?page=&page_size=&tier=&topic=&usable=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))
	size = middleware.ValidateLimit(size)

	var f evaluation.Filters
	if v := req.URL.Query().Get("tier"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid tier: %s", v)
		}
		if err := middleware.ValidateTier(n); err != nil {
			return err
		}
		t := evaluation.Tier(n)
		f.Tier = &t
	}
	f.Topic = middleware.SanitizeString(req.URL.Query().Get("topic"))
	if v := req.URL.Query().Get("usable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid usable: %s", v)
		}
		f.Usable = &b
	}

	list, err := r.scoringSvc.Paginate(req.Context(), tenant, page, size, f)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// POST /v1/{tenant}/evaluations/export
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	url, count, err := r.exportSvc.Export(req.Context(), tenant)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"snapshot_url": url,
		"count":        count,
	})
}

// GET /v1/{tenant}/feed/{userID}?size=20&exclude=id1,id2
func (r *Router) handleFeed(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	userID := chi.URLParam(req, "userID")
	if err := middleware.ValidateUserID(userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	size, _ := strconv.Atoi(req.URL.Query().Get("size"))
	if size > 0 {
		// zero falls back to the configured default size
		size = middleware.ValidateFeedSize(size)
	}

	var exclude []startup.ID
	if raw := req.URL.Query().Get("exclude"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				exclude = append(exclude, startup.ID(id))
			}
		}
	}

	res, err := r.recommendSvc.Feed(req.Context(), tenant, userID, size, exclude)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}
