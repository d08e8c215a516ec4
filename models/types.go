// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Question type constants
const (
	TypeShortAnswer    = "short-answer"
	TypeParagraph      = "paragraph"
	TypeMultipleChoice = "multiple-choice"
	TypeCheckbox       = "checkbox"
)

// IsChoiceType reports whether the question type carries an option list.
func IsChoiceType(t string) bool {
	return t == TypeMultipleChoice || t == TypeCheckbox
}

// Request types

type CreateFormRequest struct {
	Title                string                  `json:"title" validate:"required,max=255"`
	Description          string                  `json:"description"`
	PartnerName          string                  `json:"partner_name"`
	ExpectedParticipants int                     `json:"expected_participants" validate:"min=0"`
	Questions            []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	Title    string                `json:"title" validate:"required"`
	Type     string                `json:"type" validate:"required,oneof=short-answer paragraph multiple-choice checkbox"`
	Required bool                  `json:"required"`
	Options  []CreateOptionRequest `json:"options" validate:"dive"`
}

type CreateOptionRequest struct {
	OptionText string `json:"option_text" validate:"required"`
}

type SubmitResponseRequest struct {
	PublishToken string         `json:"publish_token"`
	Answers      []SubmitAnswer `json:"answers"`
}

// SubmitAnswer is one respondent value: free text for short-answer/paragraph
// questions, option ids for multiple-choice/checkbox questions.
type SubmitAnswer struct {
	QuestionID string       `json:"question_id"`
	AnswerText string       `json:"answer_text,omitempty"`
	OptionID   OptionIDList `json:"option_id,omitempty"`
}

// OptionIDList accepts either a single option id or an array of option ids
// on the wire. Clients send a bare string for multiple-choice answers and an
// array for checkbox answers.
type OptionIDList []string

func (l *OptionIDList) UnmarshalJSON(data []byte) error {
	// null means no selection, not a selection of ""
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = OptionIDList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = OptionIDList(many)
	return nil
}

// Response types

type CreateFormResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type PublishFormResponse struct {
	PublishedLink string     `json:"published_link"`
	PublishToken  string     `json:"publish_token"`
	Questions     []Question `json:"questions"`
	Message       string     `json:"message"`
}

type SubmitResponseResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type RespondentFormResponse struct {
	FormID      string     `json:"form_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

type FormDetailResponse struct {
	Success   bool                  `json:"success"`
	Form      Form                  `json:"form"`
	Responses []ResponseWithAnswers `json:"responses"`
	Analytics FormAnalytics         `json:"analytics"`
}

type FormListResponse struct {
	Forms []FormSummary `json:"forms"`
}

// Domain types

type Form struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	PartnerName          string     `json:"partner_name"`
	ExpectedParticipants int        `json:"expected_participants"`
	Published            bool       `json:"published"`
	PublishToken         *string    `json:"publish_token,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	Questions            []Question `json:"questions"`
}

type FormSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

type Question struct {
	ID       string   `json:"id"`
	FormID   string   `json:"form_id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []Option `json:"options,omitempty"`
}

type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	OptionText string `json:"option_text"`
}

type ResponseWithAnswers struct {
	ID        string    `json:"id"`
	FormID    string    `json:"form_id"`
	CreatedAt time.Time `json:"created_at"`
	Answers   []Answer  `json:"answers"`
}

// Answer is one stored row: exactly one of AnswerText or OptionID is set.
// A checkbox answer appears as one row per selected option.
type Answer struct {
	QuestionID string  `json:"question_id"`
	AnswerText *string `json:"answer_text,omitempty"`
	OptionID   *string `json:"option_id,omitempty"`
}

// Analytics types

type QuestionAnalytics struct {
	TotalAnswered  int                `json:"total_answered"`
	ShortAnswers   []string           `json:"short_answers,omitempty"`
	OptionCounts   map[string]int     `json:"option_counts,omitempty"`
	OptionPercents map[string]float64 `json:"option_percents,omitempty"`
}

type FormAnalytics struct {
	TotalResponses    int                          `json:"total_responses"`
	QuestionAnalytics map[string]QuestionAnalytics `json:"question_analytics"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
