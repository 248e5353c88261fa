// Package web serves the embedded panel pages. Every page navigation passes
// through the access gate, which may redirect to the blocked surface (or away
// from it).
package web

import (
	"log/slog"
	"net/http"

	"github.com/SebasHerPorras/produs-panel/internal/application"
)

// Surface names, matched by the gate's routing rules. The login surface is
// the application entry at "/".
const (
	surfaceLogin   = "login"
	surfaceHome    = "home"
	surfaceBlocked = application.SurfaceBlocked
)

// RegisterRoutes registers the guarded page routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, gate *application.Gate, logger *slog.Logger) {
	mux.Handle("GET /{$}", guard(gate, surfaceLogin, page("login.html"), logger))
	mux.Handle("GET /home", guard(gate, surfaceHome, page("home.html"), logger))
	mux.Handle("GET /blocked", guard(gate, surfaceBlocked, page("blocked.html"), logger))
}

// guard evaluates the access gate before letting a page navigation through.
func guard(gate *application.Gate, surface string, next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := gate.Evaluate(r.Context(), surface)
		switch decision {
		case application.RedirectHome:
			// Back to the application entry; the user is not actually blocked.
			logger.Info("navigation redirected", "surface", surface, "decision", decision.String())
			http.Redirect(w, r, "/", http.StatusSeeOther)
		case application.RedirectBlocked:
			logger.Info("navigation redirected", "surface", surface, "decision", decision.String())
			http.Redirect(w, r, "/blocked", http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// page serves a single embedded page.
func page(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := staticFS.ReadFile("static/" + name)
		if err != nil {
			http.Error(w, "page not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	})
}
