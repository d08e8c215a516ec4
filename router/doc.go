// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Form Builder API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Form authoring:

	POST /forms                  - Create form with questions and options
	GET  /forms                  - List forms
	GET  /forms/{formId}         - Form details, responses, analytics
	POST /forms/{formId}/publish - Publish and mint the share token

Respondent (public, token gated):

	GET  /forms/{formId}/respond?token=… - Question list for respondents
	POST /forms/{formId}/respond         - Submit a response

# Handler Initialization

The router creates handler instances with dependency injection:

	formHandler := handlers.NewFormHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
