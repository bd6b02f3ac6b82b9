package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tipjar/pkg/buildinfo"
	"github.com/matzehuels/tipjar/pkg/funding"
)

type handlers struct {
	resolver    Resolver
	stats       func() map[string]int
	donationURL string
	logger      *log.Logger
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	Caches    map[string]int `json:"caches,omitempty"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Version:   buildinfo.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.stats != nil {
		resp.Caches = h.stats()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html", nil)
}

func (h *handlers) npmRedirect(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/npm/"+url.PathEscape(name), http.StatusFound)
}

func (h *handlers) githubRedirect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user, repo := q.Get("user"), q.Get("repo")
	if user == "" || repo == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/github/"+url.PathEscape(user)+"/"+url.PathEscape(repo), http.StatusFound)
}

func (h *handlers) npmView(w http.ResponseWriter, r *http.Request) {
	res, ok := h.byPackage(w, r)
	if ok {
		h.render(w, r, "result.html", h.view("npm", res))
	}
}

func (h *handlers) githubView(w http.ResponseWriter, r *http.Request) {
	res, ok := h.byRepo(w, r)
	if ok {
		h.render(w, r, "result.html", h.view("github", res))
	}
}

func (h *handlers) npmJSON(w http.ResponseWriter, r *http.Request) {
	if res, ok := h.byPackage(w, r); ok {
		respondJSON(w, http.StatusOK, res)
	}
}

func (h *handlers) githubJSON(w http.ResponseWriter, r *http.Request) {
	if res, ok := h.byRepo(w, r); ok {
		respondJSON(w, http.StatusOK, res)
	}
}

func (h *handlers) byPackage(w http.ResponseWriter, r *http.Request) (funding.Result, bool) {
	res, err := h.resolver.ByPackage(r.Context(), urlParam(r, "name"))
	if err != nil {
		LoggerFromContext(r.Context()).Warn("resolution abandoned", "err", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return res, false
	}
	return res, true
}

func (h *handlers) byRepo(w http.ResponseWriter, r *http.Request) (funding.Result, bool) {
	res, err := h.resolver.ByRepo(r.Context(), urlParam(r, "user"), urlParam(r, "repo"))
	if err != nil {
		LoggerFromContext(r.Context()).Warn("resolution abandoned", "err", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return res, false
	}
	return res, true
}

// urlParam returns the decoded path parameter. chi matches on the raw path
// when the request has one, so parameters may still be percent-encoded.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if s, err := url.PathUnescape(v); err == nil {
		return s
	}
	return v
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
