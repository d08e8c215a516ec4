// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Form Builder API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - FormHandler: Form authoring and lifecycle (create, list, get, publish)
  - ResponseHandler: Respondent view and response submission

Handlers are created via constructor functions that accept *sql.DB and Config:

	formHandler := handlers.NewFormHandler(db, cfg)

# Form Lifecycle

Forms progress through two states: draft → published

	POST /forms                   → Create (form + questions + options, one tx)
	POST /forms/{formId}/publish  → Publish (mints the publish token)
	GET  /forms/{formId}          → Get (form, responses, analytics)

Publishing is one-way: a second publish call returns 409 and never rotates
the token, so share links already handed out stay valid.

# Response Flow

Respondents interact through the publish token:

	GET  /forms/{formId}/respond?token=… → Questions (respondent view)
	POST /forms/{formId}/respond         → Submit (response + answers, one tx)

Both fail closed: 404 for an unknown form, 403 when the form is unpublished
or the token mismatches, with no rows written.

# Analytics

Analytics are recomputed from stored answers on every read:

	analytics, err := ComputeFormAnalytics(db, formID)

Per question this yields the answered count, the ordered free-text answers
for text questions, and per-option counts plus percentages for choice
questions. Percentages with zero responses are 0.
*/
package handlers
