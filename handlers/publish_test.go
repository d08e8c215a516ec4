// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"formbuilder/models"
	"formbuilder/testutil"
)

func TestPublishForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(db, cfg)

	formID, _ := testutil.CreateTestForm(t, db, false)
	q := testutil.AddTestQuestion(t, db, formID, "Pick one", models.TypeMultipleChoice, true, 0)
	testutil.AddTestOption(t, db, q, "Yes", 0)
	testutil.AddTestOption(t, db, q, "No", 1)

	req := testutil.MakeRequest("POST", "/forms/"+formID+"/publish", nil, nil)
	req.SetPathValue("formId", formID)
	w := httptest.NewRecorder()
	handler.Publish(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PublishFormResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.PublishToken == "" {
		t.Fatal("Expected non-empty publish token")
	}
	wantLink := cfg.BaseURL + "/forms/" + formID + "/respond/" + resp.PublishToken
	if resp.PublishedLink != wantLink {
		t.Errorf("Expected link '%s', got '%s'", wantLink, resp.PublishedLink)
	}
	if len(resp.Questions) != 1 {
		t.Errorf("Expected 1 question in snapshot, got %d", len(resp.Questions))
	}
	if strings.ContainsAny(resp.PublishToken, "+/=") {
		t.Errorf("Token is not URL-safe: %s", resp.PublishToken)
	}

	// Stored state matches
	var published bool
	var storedToken string
	err := db.QueryRow("SELECT published, publish_token FROM forms WHERE id = $1", formID).Scan(&published, &storedToken)
	if err != nil {
		t.Fatalf("Failed to query form: %v", err)
	}
	if !published {
		t.Error("Form not marked published")
	}
	if storedToken != resp.PublishToken {
		t.Error("Stored token differs from returned token")
	}
}

// TestPublishForm_Twice pins the re-publish behavior: the second call is
// rejected with 409 and the original token survives, keeping old share
// links valid.
func TestPublishForm_Twice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(db, cfg)

	formID, _ := testutil.CreateTestForm(t, db, false)
	testutil.AddTestQuestion(t, db, formID, "Q1", models.TypeShortAnswer, false, 0)

	req := testutil.MakeRequest("POST", "/forms/"+formID+"/publish", nil, nil)
	req.SetPathValue("formId", formID)
	w := httptest.NewRecorder()
	handler.Publish(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var first models.PublishFormResponse
	testutil.AssertJSON(t, w, &first)

	req = testutil.MakeRequest("POST", "/forms/"+formID+"/publish", nil, nil)
	req.SetPathValue("formId", formID)
	w = httptest.NewRecorder()
	handler.Publish(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	var storedToken string
	if err := db.QueryRow("SELECT publish_token FROM forms WHERE id = $1", formID).Scan(&storedToken); err != nil {
		t.Fatalf("Failed to query form: %v", err)
	}
	if storedToken != first.PublishToken {
		t.Error("Token was rotated by rejected re-publish")
	}
}

func TestPublishForm_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/forms/missing/publish", nil, nil)
	req.SetPathValue("formId", "missing")
	w := httptest.NewRecorder()
	handler.Publish(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

// TestPublishForm_TokensDiffer verifies two forms never share a token.
func TestPublishForm_TokensDiffer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(db, cfg)

	tokens := make(map[string]bool)
	for i := 0; i < 5; i++ {
		formID, _ := testutil.CreateTestForm(t, db, false)

		req := testutil.MakeRequest("POST", "/forms/"+formID+"/publish", nil, nil)
		req.SetPathValue("formId", formID)
		w := httptest.NewRecorder()
		handler.Publish(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PublishFormResponse
		testutil.AssertJSON(t, w, &resp)
		if tokens[resp.PublishToken] {
			t.Fatalf("Duplicate publish token: %s", resp.PublishToken)
		}
		tokens[resp.PublishToken] = true
	}
}
