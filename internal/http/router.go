// Package http assembles the ServeMux for the service's public and
// admin routes.
package http

import (
	nethttp "net/http"

	"baseball-games-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Admin routes mount only
// when an admin handler is supplied.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/", handler.GameRoutes)
	if admin != nil {
		mux.HandleFunc("/admin/games", admin.CreateGame)
		mux.HandleFunc("/admin/sweep", admin.Sweep)
	}
	return mux
}
