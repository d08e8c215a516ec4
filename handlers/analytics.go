// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"

	"formbuilder/models"
)

// ComputeFormAnalytics recomputes per-question tallies from the stored
// answers. Nothing is cached; cost is linear in the number of answers.
func ComputeFormAnalytics(db *sql.DB, formID string) (models.FormAnalytics, error) {
	totalResponses, err := countResponses(db, formID)
	if err != nil {
		return models.FormAnalytics{}, fmt.Errorf("failed to count responses: %w", err)
	}

	questions, err := loadFormQuestions(db, formID)
	if err != nil {
		return models.FormAnalytics{}, fmt.Errorf("failed to load questions: %w", err)
	}

	textAnswers, err := getTextAnswers(db, formID)
	if err != nil {
		return models.FormAnalytics{}, fmt.Errorf("failed to load text answers: %w", err)
	}

	optionSelections, err := getOptionSelections(db, formID)
	if err != nil {
		return models.FormAnalytics{}, fmt.Errorf("failed to load option selections: %w", err)
	}

	analytics := models.FormAnalytics{
		TotalResponses:    totalResponses,
		QuestionAnalytics: make(map[string]models.QuestionAnalytics, len(questions)),
	}

	for _, q := range questions {
		qa := models.QuestionAnalytics{}

		if models.IsChoiceType(q.Type) {
			// Every option appears in the counts, zeros included
			qa.OptionCounts = make(map[string]int, len(q.Options))
			qa.OptionPercents = make(map[string]float64, len(q.Options))
			for _, opt := range q.Options {
				qa.OptionCounts[opt.ID] = 0
			}

			answeredBy := make(map[string]bool)
			for _, sel := range optionSelections[q.ID] {
				qa.OptionCounts[sel.OptionID]++
				answeredBy[sel.ResponseID] = true
			}
			qa.TotalAnswered = len(answeredBy)

			for optionID, count := range qa.OptionCounts {
				// Zero responses yield 0, never NaN
				if totalResponses == 0 {
					qa.OptionPercents[optionID] = 0
					continue
				}
				qa.OptionPercents[optionID] = float64(count) / float64(totalResponses) * 100
			}
		} else {
			qa.ShortAnswers = append([]string{}, textAnswers[q.ID]...)
			qa.TotalAnswered = len(qa.ShortAnswers)
		}

		analytics.QuestionAnalytics[q.ID] = qa
	}

	return analytics, nil
}

func countResponses(db *sql.DB, formID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM responses WHERE form_id = $1
	`, formID).Scan(&count)
	return count, err
}

// getTextAnswers retrieves free-text answers grouped by question, in
// submission order.
func getTextAnswers(db *sql.DB, formID string) (map[string][]string, error) {
	rows, err := db.Query(`
		SELECT a.question_id, a.answer_text
		FROM answer_texts a
		JOIN responses r ON r.id = a.response_id
		WHERE r.form_id = $1
		ORDER BY r.created_at, r.id
	`, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(map[string][]string)
	for rows.Next() {
		var questionID, text string
		if err := rows.Scan(&questionID, &text); err != nil {
			return nil, err
		}
		answers[questionID] = append(answers[questionID], text)
	}

	return answers, rows.Err()
}

type optionSelection struct {
	ResponseID string
	OptionID   string
}

// getOptionSelections retrieves option picks grouped by question. The
// response id rides along so checkbox answers count a response once even
// when it selected several options.
func getOptionSelections(db *sql.DB, formID string) (map[string][]optionSelection, error) {
	rows, err := db.Query(`
		SELECT a.question_id, a.response_id, a.option_id
		FROM answer_options a
		JOIN responses r ON r.id = a.response_id
		WHERE r.form_id = $1
		ORDER BY a.question_id
	`, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	selections := make(map[string][]optionSelection)
	for rows.Next() {
		var questionID string
		var sel optionSelection
		if err := rows.Scan(&questionID, &sel.ResponseID, &sel.OptionID); err != nil {
			return nil, err
		}
		selections[questionID] = append(selections[questionID], sel)
	}

	return selections, rows.Err()
}
