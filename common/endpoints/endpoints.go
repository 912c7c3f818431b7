// Package endpoints provides the http server that carries the scheduling
// api plus the health and stats admin handlers.
package endpoints

import (
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/tempodev/tempo/common/stats"
)

type StatScope string

// MakeStatsReceiver creates a receiver scoped for one server.
func MakeStatsReceiver(scope StatScope) stats.StatsReceiver {
	return stats.DefaultStatsReceiver().Scope(string(scope))
}

func NewServer(addr string, stat stats.StatsReceiver, mux *http.ServeMux) *Server {
	if mux == nil {
		mux = http.NewServeMux()
	}
	s := &Server{Addr: addr, Stats: stat, Mux: mux}
	mux.HandleFunc("/", helpHandler)
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/admin/metrics.json", s.statsHandler)
	return s
}

type Server struct {
	Addr  string
	Stats stats.StatsReceiver
	Mux   *http.ServeMux
}

func (s *Server) Serve() error {
	log.WithFields(log.Fields{"addr": s.Addr}).Info("Serving http & stats")
	return http.ListenAndServe(s.Addr, s.Mux)
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Common paths: '/health', '/admin/metrics.json', '/schedule/{policy}_{single|multi}_node'", 501)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "ok")
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	const contentTypeHdr = "Content-Type"
	const contentTypeVal = "application/json; charset=utf-8"
	w.Header().Set(contentTypeHdr, contentTypeVal)

	pretty := r.URL.Query().Get("pretty") == "true"
	if _, err := io.WriteString(w, string(s.Stats.Render(pretty))); err != nil {
		http.Error(w, err.Error(), 500)
	}
}
