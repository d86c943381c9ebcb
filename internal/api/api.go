package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ajay-gandhi/alfred4.0/internal/config"
	"github.com/ajay-gandhi/alfred4.0/internal/db"
)

// API exposes read access to orders, menus and stats, plus a protected
// trigger for an immediate automation run.
type API struct {
	router     *mux.Router
	db         *db.DB
	config     *config.Config
	jwtSecret  []byte
	triggerRun func()
}

func New(cfg *config.Config, database *db.DB, triggerRun func()) *API {
	api := &API{
		router:     mux.NewRouter(),
		db:         database,
		config:     cfg,
		jwtSecret:  []byte(cfg.JWTSecret),
		triggerRun: triggerRun,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	// Auth endpoints
	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods("POST")

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/orders", a.handleListOrders).Methods("GET")
	protected.HandleFunc("/menus/{restaurant}", a.handleGetMenu).Methods("GET")
	protected.HandleFunc("/stats/{user_id}", a.handleGetStats).Methods("GET")
	protected.HandleFunc("/run", a.handleRun).Methods("POST")
}

func (a *API) Start() error {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}

	handler := cors.New(corsOptions).Handler(a.router)

	log.Printf("API server listening on http://%s", a.config.WebBind)
	return http.ListenAndServe(a.config.WebBind, handler)
}
