// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"formbuilder/auth"
	"formbuilder/cliparse"
	dbpkg "formbuilder/db"
	"formbuilder/middleware"
	"formbuilder/models"
)

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg}
}

// publishGate checks that the form exists, is published, and that the
// presented token matches the stored one. Writes the error response and
// returns false when any gate fails; no side effects happen in that case.
func (h *ResponseHandler) publishGate(w http.ResponseWriter, formID, token string) bool {
	var published bool
	var storedToken sql.NullString
	err := h.db.QueryRow(`
		SELECT published, publish_token FROM forms WHERE id = $1
	`, formID).Scan(&published, &storedToken)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return false
	}
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}

	if !published {
		middleware.ErrorResponse(w, http.StatusForbidden, "This form is not published")
		return false
	}

	if !storedToken.Valid || !auth.TokenEqual(token, storedToken.String) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid publish token")
		return false
	}

	return true
}

// Questions handles GET /forms/{formId}/respond?token=...
// Serves the respondent view of a published form: title, description, and
// the question list with options.
func (h *ResponseHandler) Questions(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("formId")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	if !h.publishGate(w, formID, token) {
		return
	}

	form, err := loadForm(h.db, formID)
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questions, err := loadFormQuestions(h.db, formID)
	if err != nil {
		slog.Error("failed to load questions", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RespondentFormResponse{
		FormID:      form.ID,
		Title:       form.Title,
		Description: form.Description,
		Questions:   questions,
	})
}

// Submit handles POST /forms/{formId}/respond
// Verifies form/published/token, validates the answers against the form's
// stored questions, then writes the response row and all answer rows in a
// single transaction. A failed submission persists nothing.
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("formId")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Answers) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answers cannot be empty")
		return
	}

	if !h.publishGate(w, formID, req.PublishToken) {
		return
	}

	questions, err := loadFormQuestions(h.db, formID)
	if err != nil {
		slog.Error("failed to load questions", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if msg := validateAnswers(questions, req.Answers); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	responseID := uuid.NewString()
	err = dbpkg.WithTx(h.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO responses (id, form_id, created_at)
			VALUES ($1, $2, $3)
		`, responseID, formID, time.Now())
		if err != nil {
			return err
		}

		for _, ans := range req.Answers {
			if ans.AnswerText != "" {
				_, err = tx.Exec(`
					INSERT INTO answer_texts (id, response_id, question_id, answer_text)
					VALUES ($1, $2, $3, $4)
				`, uuid.NewString(), responseID, ans.QuestionID, ans.AnswerText)
				if err != nil {
					return err
				}
				continue
			}

			for _, optionID := range ans.OptionID {
				_, err = tx.Exec(`
					INSERT INTO answer_options (id, response_id, question_id, option_id)
					VALUES ($1, $2, $3, $4)
				`, uuid.NewString(), responseID, ans.QuestionID, optionID)
				if err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		slog.Error("failed to submit response", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error submitting response")
		return
	}

	slog.Info("response submitted", "form_id", formID, "response_id", responseID, "answers", len(req.Answers))

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ID:      responseID,
		Message: "Response submitted successfully",
	})
}

// validateAnswers checks a submission against the form's stored questions.
// Returns an empty string when valid, otherwise the message for a 400.
func validateAnswers(questions []models.Question, answers []models.SubmitAnswer) string {
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answered := make(map[string]bool, len(answers))
	for _, ans := range answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			return "Unknown question: " + ans.QuestionID
		}
		if answered[q.ID] {
			return "Duplicate answer for question: " + q.ID
		}
		answered[q.ID] = true

		if models.IsChoiceType(q.Type) {
			if ans.AnswerText != "" {
				return q.Type + " question cannot carry free text: " + q.ID
			}
			if len(ans.OptionID) == 0 {
				return q.Type + " question requires at least one option: " + q.ID
			}
			if q.Type == models.TypeMultipleChoice && len(ans.OptionID) != 1 {
				return "multiple-choice question takes exactly one option: " + q.ID
			}

			valid := make(map[string]bool, len(q.Options))
			for _, opt := range q.Options {
				valid[opt.ID] = true
			}
			seen := make(map[string]bool, len(ans.OptionID))
			for _, optionID := range ans.OptionID {
				if !valid[optionID] {
					return "Invalid option_id: " + optionID
				}
				if seen[optionID] {
					return "Duplicate option_id: " + optionID
				}
				seen[optionID] = true
			}
		} else {
			if len(ans.OptionID) > 0 {
				return q.Type + " question cannot carry options: " + q.ID
			}
			if ans.AnswerText == "" {
				return q.Type + " question requires answer_text: " + q.ID
			}
		}
	}

	for _, q := range questions {
		if q.Required && !answered[q.ID] {
			return "Required question not answered: " + q.ID
		}
	}

	return ""
}
