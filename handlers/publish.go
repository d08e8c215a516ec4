// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"formbuilder/auth"
	dbpkg "formbuilder/db"
	"formbuilder/middleware"
	"formbuilder/models"
)

// Publish handles POST /forms/{formId}/publish
// Mints a publish token and flips the form to published. Re-publishing an
// already-published form is rejected; the token is never rotated, so
// existing share links stay valid.
func (h *FormHandler) Publish(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("formId")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	token, err := auth.GeneratePublishToken()
	if err != nil {
		slog.Error("failed to generate publish token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish form")
		return
	}

	// Guard the draft state in the UPDATE itself so two concurrent publish
	// calls cannot both succeed and return different tokens.
	var affected int64
	err = dbpkg.WithTx(h.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE forms
			SET published = TRUE, publish_token = $1
			WHERE id = $2 AND published = FALSE
		`, token, formID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		slog.Error("failed to publish form", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish form")
		return
	}

	if affected == 0 {
		// Either the form does not exist or it is already published
		var published bool
		err := h.db.QueryRow("SELECT published FROM forms WHERE id = $1", formID).Scan(&published)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
			return
		}
		if err != nil {
			slog.Error("failed to query form", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.ErrorResponse(w, http.StatusConflict, "Form is already published")
		return
	}

	questions, err := loadFormQuestions(h.db, formID)
	if err != nil {
		slog.Error("failed to load questions", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	publishedLink := h.cfg.BaseURL + "/forms/" + formID + "/respond/" + token

	slog.Info("form published", "form_id", formID)

	middleware.JSONResponse(w, http.StatusOK, models.PublishFormResponse{
		PublishedLink: publishedLink,
		PublishToken:  token,
		Questions:     questions,
		Message:       "Form published successfully",
	})
}
