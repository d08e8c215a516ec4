// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"formbuilder/auth"
	"formbuilder/cliparse"
	dbpkg "formbuilder/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema. The
// database file lives in the test's temp dir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "formbuilder_test.db") +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Single connection serializes writers, matching db.Open
	db.SetMaxOpenConns(1)

	if err := dbpkg.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:formbuilder_test.db",
		DatabaseType: "sqlite",
		BaseURL:      "http://test.local",
	}
}

// CreateTestForm creates a form in the database. When published is true a
// publish token is minted and returned, otherwise token is empty.
func CreateTestForm(t *testing.T, db *sql.DB, published bool) (formID, token string) {
	t.Helper()

	formID, _ = auth.GenerateID(8)

	var storedToken *string
	if published {
		tok, err := auth.GeneratePublishToken()
		if err != nil {
			t.Fatalf("Failed to generate publish token: %v", err)
		}
		token = tok
		storedToken = &tok
	}

	_, err := db.Exec(`
		INSERT INTO forms (id, title, description, partner_name, expected_participants, published, publish_token, created_at)
		VALUES ($1, 'Test Form', 'A test form', 'TestPartner', 25, $2, $3, $4)
	`, formID, published, storedToken, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test form: %v", err)
	}

	return formID, token
}

// AddTestQuestion adds a question to a form and returns the question ID
func AddTestQuestion(t *testing.T, db *sql.DB, formID, title, qtype string, required bool, position int) string {
	t.Helper()

	questionID, _ := auth.GenerateID(8)
	_, err := db.Exec(`
		INSERT INTO questions (id, form_id, title, type, required, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, questionID, formID, title, qtype, required, position)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// AddTestOption adds an option to a question and returns the option ID
func AddTestOption(t *testing.T, db *sql.DB, questionID, text string, position int) string {
	t.Helper()

	optionID, _ := auth.GenerateID(8)
	_, err := db.Exec(`
		INSERT INTO options (id, question_id, option_text, position)
		VALUES ($1, $2, $3, $4)
	`, optionID, questionID, text, position)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CreateTestResponse inserts a response row and returns its ID
func CreateTestResponse(t *testing.T, db *sql.DB, formID string) string {
	t.Helper()

	responseID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO responses (id, form_id, created_at)
		VALUES ($1, $2, $3)
	`, responseID, formID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return responseID
}

// AddTestTextAnswer stores a free-text answer for a response
func AddTestTextAnswer(t *testing.T, db *sql.DB, responseID, questionID, text string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO answer_texts (id, response_id, question_id, answer_text)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), responseID, questionID, text)
	if err != nil {
		t.Fatalf("Failed to create test text answer: %v", err)
	}
}

// AddTestOptionAnswer stores one selected option for a response
func AddTestOptionAnswer(t *testing.T, db *sql.DB, responseID, questionID, optionID string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO answer_options (id, response_id, question_id, option_id)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), responseID, questionID, optionID)
	if err != nil {
		t.Fatalf("Failed to create test option answer: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
