package server

import (
	"net/http"

	"github.com/watzon/hookline/internal/metrics"
	"github.com/watzon/hookline/internal/server/handlers"
)

type Router struct {
	server      *Server
	mux         *http.ServeMux
	middlewares []Middleware
}

type Middleware func(http.Handler) http.Handler

func NewRouter(srv *Server) *Router {
	r := &Router{
		server: srv,
		mux:    http.NewServeMux(),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)

	if r.server.cfg.Server.CORS.Enabled {
		r.Use(CORSMiddleware(r.server.cfg.Server.CORS))
	}

	if r.server.cfg.Server.MaxBodySize > 0 {
		r.Use(MaxBodySizeMiddleware(r.server.cfg.Server.MaxBodySize))
	}
}

func (r *Router) Use(mw Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

func (r *Router) setupRoutes() {
	h := handlers.New(r.server.Service(), r.server.Broker(), r.server.Config())

	r.mux.HandleFunc("POST /api/v1/get-url", h.CreateURL)
	r.mux.HandleFunc("POST /api/v1/authenticate", h.Authenticate)

	// Any method: webhook producers POST, PUT, or anything else.
	r.mux.HandleFunc("/{code}/webhook", h.Relay)

	rt := handlers.NewRealtimeHandler(r.server.Broker())
	r.mux.HandleFunc("GET /api/realtime", rt.HandleWebSocket)

	hh := handlers.NewHealthHandler(r.server.Store(), r.server.Broker())
	r.mux.HandleFunc("GET /health", hh.Health)

	r.mux.Handle("GET /metrics", metrics.Handler())

	r.mux.HandleFunc("/", h.NotFound)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := http.Handler(r.mux)

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	handler.ServeHTTP(w, req)
}
