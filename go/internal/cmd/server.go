package main

import (
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/mockdraft/go/internal/config"
	"github.com/mcdev12/mockdraft/go/internal/draft/service"
)

func setupServer(cfg config.Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	// Register services
	services.Drafts.Register(mux)

	// Add health check endpoint
	mux.HandleFunc("GET /health", service.Health)

	// Wrap with CORS
	handler := c.Handler(service.AccessLog(mux))

	// Setup HTTP/2 server
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		// a single ai-picks call may sit through many thinking delays
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
}
