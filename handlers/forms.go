// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"formbuilder/auth"
	"formbuilder/cliparse"
	dbpkg "formbuilder/db"
	"formbuilder/middleware"
	"formbuilder/models"
)

var validate = validator.New()

type FormHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFormHandler(db *sql.DB, cfg cliparse.Config) *FormHandler {
	return &FormHandler{db: db, cfg: cfg}
}

// Create handles POST /forms
// Inserts the form, its questions, and their options in one transaction so
// readers never observe a partial form.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form payload: "+err.Error())
		return
	}

	// Options only exist under choice-based question types
	for _, q := range req.Questions {
		if models.IsChoiceType(q.Type) && len(q.Options) == 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, q.Type+" question requires at least one option")
			return
		}
		if !models.IsChoiceType(q.Type) && len(q.Options) > 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, q.Type+" question cannot have options")
			return
		}
	}

	formID, err := auth.GenerateID(8)
	if err != nil {
		slog.Error("failed to generate form ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	err = dbpkg.WithTx(h.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO forms (id, title, description, partner_name, expected_participants, published, created_at)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		`, formID, req.Title, req.Description, req.PartnerName, req.ExpectedParticipants, time.Now())
		if err != nil {
			return err
		}

		for qPos, q := range req.Questions {
			questionID, err := auth.GenerateID(8)
			if err != nil {
				return err
			}

			_, err = tx.Exec(`
				INSERT INTO questions (id, form_id, title, type, required, position)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, questionID, formID, q.Title, q.Type, q.Required, qPos)
			if err != nil {
				return err
			}

			for oPos, opt := range q.Options {
				optionID, err := auth.GenerateID(8)
				if err != nil {
					return err
				}

				_, err = tx.Exec(`
					INSERT INTO options (id, question_id, option_text, position)
					VALUES ($1, $2, $3, $4)
				`, optionID, questionID, opt.OptionText, oPos)
				if err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		slog.Error("failed to create form", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	slog.Info("form created", "form_id", formID, "questions", len(req.Questions))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateFormResponse{
		ID:      formID,
		Message: "Form created successfully",
	})
}

// List handles GET /forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, title, description, published, created_at
		FROM forms
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query forms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	forms := []models.FormSummary{}
	for rows.Next() {
		var f models.FormSummary
		var description sql.NullString
		if err := rows.Scan(&f.ID, &f.Title, &description, &f.Published, &f.CreatedAt); err != nil {
			slog.Error("failed to scan form", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		f.Description = description.String
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate forms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FormListResponse{Forms: forms})
}

// Get handles GET /forms/{formId}
// Returns the form with its questions, every stored response with nested
// answers, and freshly computed analytics.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("formId")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	form, err := loadForm(h.db, formID)
	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Form not found",
		})
		return
	}
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	form.Questions, err = loadFormQuestions(h.db, formID)
	if err != nil {
		slog.Error("failed to load questions", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := loadFormResponses(h.db, formID)
	if err != nil {
		slog.Error("failed to load responses", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	analytics, err := ComputeFormAnalytics(h.db, formID)
	if err != nil {
		slog.Error("failed to compute analytics", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FormDetailResponse{
		Success:   true,
		Form:      form,
		Responses: responses,
		Analytics: analytics,
	})
}

// loadForm reads a single form row. Returns sql.ErrNoRows when absent.
func loadForm(db *sql.DB, formID string) (models.Form, error) {
	var form models.Form
	var description, partnerName sql.NullString
	err := db.QueryRow(`
		SELECT id, title, description, partner_name, expected_participants,
		       published, publish_token, created_at
		FROM forms
		WHERE id = $1
	`, formID).Scan(
		&form.ID, &form.Title, &description, &partnerName,
		&form.ExpectedParticipants, &form.Published, &form.PublishToken,
		&form.CreatedAt,
	)
	if err != nil {
		return models.Form{}, err
	}
	form.Description = description.String
	form.PartnerName = partnerName.String
	return form, nil
}

// loadFormQuestions reads all questions for a form in display order, each
// with its options attached.
func loadFormQuestions(db *sql.DB, formID string) ([]models.Question, error) {
	rows, err := db.Query(`
		SELECT id, form_id, title, type, required
		FROM questions
		WHERE form_id = $1
		ORDER BY position
	`, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.FormID, &q.Title, &q.Type, &q.Required); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := db.Query(`
		SELECT o.id, o.question_id, o.option_text
		FROM options o
		JOIN questions q ON q.id = o.question_id
		WHERE q.form_id = $1
		ORDER BY o.position
	`, formID)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	optionsByQuestion := make(map[string][]models.Option)
	for optRows.Next() {
		var opt models.Option
		if err := optRows.Scan(&opt.ID, &opt.QuestionID, &opt.OptionText); err != nil {
			return nil, err
		}
		optionsByQuestion[opt.QuestionID] = append(optionsByQuestion[opt.QuestionID], opt)
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		questions[i].Options = optionsByQuestion[questions[i].ID]
	}

	return questions, nil
}

// loadFormResponses reads all responses for a form with their answers.
// Text and option answers come from separate tables and are merged per
// response, ordered by the owning question's position.
func loadFormResponses(db *sql.DB, formID string) ([]models.ResponseWithAnswers, error) {
	rows, err := db.Query(`
		SELECT id, form_id, created_at
		FROM responses
		WHERE form_id = $1
		ORDER BY created_at, id
	`, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []models.ResponseWithAnswers{}
	index := make(map[string]int)
	for rows.Next() {
		var resp models.ResponseWithAnswers
		if err := rows.Scan(&resp.ID, &resp.FormID, &resp.CreatedAt); err != nil {
			return nil, err
		}
		resp.Answers = []models.Answer{}
		index[resp.ID] = len(responses)
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	textRows, err := db.Query(`
		SELECT a.response_id, a.question_id, a.answer_text
		FROM answer_texts a
		JOIN questions q ON q.id = a.question_id
		WHERE q.form_id = $1
		ORDER BY q.position
	`, formID)
	if err != nil {
		return nil, err
	}
	defer textRows.Close()

	for textRows.Next() {
		var responseID string
		var ans models.Answer
		var text string
		if err := textRows.Scan(&responseID, &ans.QuestionID, &text); err != nil {
			return nil, err
		}
		ans.AnswerText = &text
		if i, ok := index[responseID]; ok {
			responses[i].Answers = append(responses[i].Answers, ans)
		}
	}
	if err := textRows.Err(); err != nil {
		return nil, err
	}

	optRows, err := db.Query(`
		SELECT a.response_id, a.question_id, a.option_id
		FROM answer_options a
		JOIN questions q ON q.id = a.question_id
		WHERE q.form_id = $1
		ORDER BY q.position, a.option_id
	`, formID)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var responseID string
		var ans models.Answer
		var optionID string
		if err := optRows.Scan(&responseID, &ans.QuestionID, &optionID); err != nil {
			return nil, err
		}
		ans.OptionID = &optionID
		if i, ok := index[responseID]; ok {
			responses[i].Answers = append(responses[i].Answers, ans)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
