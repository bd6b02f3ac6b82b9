package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/matzehuels/tipjar/pkg/funding"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type resultView struct {
	Kind    string
	Subject string
	Users   []userView
}

type userView struct {
	funding.Entry
	URL string
}

func (h *handlers) view(kind string, res funding.Result) resultView {
	base := strings.TrimRight(h.donationURL, "/")
	users := make([]userView, len(res.Users))
	for i, e := range res.Users {
		users[i] = userView{Entry: e}
		if base != "" {
			users[i].URL = base + "/" + e.User + "/"
		}
	}
	return resultView{Kind: kind, Subject: res.Subject, Users: users}
}

// render executes the named template into a buffer first so a template
// error still yields a clean 500.
func (h *handlers) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		LoggerFromContext(r.Context()).Error("render failed", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
