// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"formbuilder/cliparse"
	"formbuilder/handlers"
	"formbuilder/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	formHandler := handlers.NewFormHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Form authoring (author operations)
	mux.HandleFunc("POST /forms", middleware.WithLogging(formHandler.Create))
	mux.HandleFunc("GET /forms", middleware.WithLogging(formHandler.List))
	mux.HandleFunc("GET /forms/{formId}", middleware.WithLogging(formHandler.Get))
	mux.HandleFunc("POST /forms/{formId}/publish", middleware.WithLogging(formHandler.Publish))

	// Respondent operations (public, token gated)
	mux.HandleFunc("GET /forms/{formId}/respond", middleware.WithLogging(responseHandler.Questions))
	mux.HandleFunc("POST /forms/{formId}/respond", middleware.WithLogging(responseHandler.Submit))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("formbuilder API v1"))
	})

	return mux
}
