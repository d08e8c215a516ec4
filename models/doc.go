// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateFormRequest: title, description, partner_name, expected_participants, questions
  - CreateQuestionRequest: title, type, required, options
  - SubmitResponseRequest: publish_token, answers
  - SubmitAnswer: question_id plus answer_text or option_id

SubmitAnswer.OptionID accepts a bare string (multiple-choice) or an array
(checkbox) on the wire via OptionIDList.

Create requests carry go-playground/validator tags; handlers call
validate.Struct before touching the database.

# Response Types

Types for JSON responses:

  - CreateFormResponse: id, message
  - PublishFormResponse: published_link, publish_token, questions, message
  - SubmitResponseResponse: id, message
  - RespondentFormResponse: form_id, title, description, questions
  - FormDetailResponse: success, form, responses, analytics
  - FormListResponse: forms
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Form: form metadata, publish state, nested questions
  - Question: one question with its options
  - Option: choice list entry
  - ResponseWithAnswers: one submission with its answers
  - Answer: stored answer row (text or option variant)
  - FormAnalytics / QuestionAnalytics: read-time tallies

# Constants

Question types:

	TypeShortAnswer    = "short-answer"
	TypeParagraph      = "paragraph"
	TypeMultipleChoice = "multiple-choice"
	TypeCheckbox       = "checkbox"

IsChoiceType reports whether a type carries an option list.
*/
package models
