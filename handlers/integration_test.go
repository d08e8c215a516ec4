// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"formbuilder/models"
	"formbuilder/testutil"
)

// TestFullFormWorkflow tests the complete end-to-end workflow:
// 1. Create form with questions and options
// 2. Publish the form
// 3. Respondent fetches the question list
// 4. Respondents submit responses
// 5. Fetch the form and verify responses and analytics
func TestFullFormWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	formHandler := NewFormHandler(db, cfg)
	responseHandler := NewResponseHandler(db, cfg)

	// Step 1: Create a form
	createReq := models.CreateFormRequest{
		Title:                "Integration Test Form",
		Description:          "Testing the full workflow",
		PartnerName:          "IntegrationPartner",
		ExpectedParticipants: 10,
		Questions: []models.CreateQuestionRequest{
			{Title: "Your name", Type: models.TypeShortAnswer, Required: true},
			{
				Title:    "Favorite color",
				Type:     models.TypeMultipleChoice,
				Required: true,
				Options: []models.CreateOptionRequest{
					{OptionText: "Red"},
					{OptionText: "Blue"},
				},
			},
		},
	}
	req := testutil.MakeRequest("POST", "/forms", createReq, nil)
	w := httptest.NewRecorder()
	formHandler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create form failed: %d - %s", w.Code, w.Body.String())
	}

	var createResp models.CreateFormResponse
	testutil.AssertJSON(t, w, &createResp)
	formID := createResp.ID
	t.Logf("Step 1 - Created form: %s", formID)

	// Step 2: Publish the form
	req = testutil.MakeRequest("POST", "/forms/"+formID+"/publish", nil, nil)
	req.SetPathValue("formId", formID)
	w = httptest.NewRecorder()
	formHandler.Publish(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Publish failed: %d - %s", w.Code, w.Body.String())
	}

	var publishResp models.PublishFormResponse
	testutil.AssertJSON(t, w, &publishResp)
	token := publishResp.PublishToken
	if token == "" {
		t.Fatal("Step 2 - Missing publish token")
	}
	if len(publishResp.Questions) != 2 {
		t.Fatalf("Step 2 - Expected 2 questions in snapshot, got %d", len(publishResp.Questions))
	}
	t.Logf("Step 2 - Published with token: %s", token)

	// Step 3: Respondent fetches the question list
	req = testutil.MakeRequest("GET", "/forms/"+formID+"/respond?token="+token, nil, nil)
	req.SetPathValue("formId", formID)
	w = httptest.NewRecorder()
	responseHandler.Questions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Respondent view failed: %d - %s", w.Code, w.Body.String())
	}

	var view models.RespondentFormResponse
	testutil.AssertJSON(t, w, &view)
	nameQ := view.Questions[0].ID
	colorQ := view.Questions[1].ID
	red := view.Questions[1].Options[0].ID
	blue := view.Questions[1].Options[1].ID
	t.Log("Step 3 - Fetched respondent view")

	// Step 4: Submit two responses
	submissions := []models.SubmitResponseRequest{
		{
			PublishToken: token,
			Answers: []models.SubmitAnswer{
				{QuestionID: nameQ, AnswerText: "Ada"},
				{QuestionID: colorQ, OptionID: models.OptionIDList{red}},
			},
		},
		{
			PublishToken: token,
			Answers: []models.SubmitAnswer{
				{QuestionID: nameQ, AnswerText: "Grace"},
				{QuestionID: colorQ, OptionID: models.OptionIDList{blue}},
			},
		},
	}
	for i, sub := range submissions {
		req = testutil.MakeRequest("POST", "/forms/"+formID+"/respond", sub, nil)
		req.SetPathValue("formId", formID)
		w = httptest.NewRecorder()
		responseHandler.Submit(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Submission %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}
	t.Log("Step 4 - Submitted 2 responses")

	// Step 5: Fetch form details and verify
	req = testutil.MakeRequest("GET", "/forms/"+formID, nil, nil)
	req.SetPathValue("formId", formID)
	w = httptest.NewRecorder()
	formHandler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Get form failed: %d - %s", w.Code, w.Body.String())
	}

	var detail models.FormDetailResponse
	testutil.AssertJSON(t, w, &detail)

	if len(detail.Responses) != 2 {
		t.Errorf("Step 5 - Expected 2 responses, got %d", len(detail.Responses))
	}
	for _, resp := range detail.Responses {
		if len(resp.Answers) != 2 {
			t.Errorf("Step 5 - Expected 2 answers per response, got %d", len(resp.Answers))
		}
	}

	if detail.Analytics.TotalResponses != 2 {
		t.Errorf("Step 5 - Expected 2 total responses, got %d", detail.Analytics.TotalResponses)
	}
	nameQA := detail.Analytics.QuestionAnalytics[nameQ]
	if len(nameQA.ShortAnswers) != 2 {
		t.Errorf("Step 5 - Expected 2 text answers, got %v", nameQA.ShortAnswers)
	}
	colorQA := detail.Analytics.QuestionAnalytics[colorQ]
	if colorQA.OptionCounts[red] != 1 || colorQA.OptionCounts[blue] != 1 {
		t.Errorf("Step 5 - Expected 1/1 option split, got %v", colorQA.OptionCounts)
	}
	if colorQA.OptionPercents[red] != 50 {
		t.Errorf("Step 5 - Expected 50%% for red, got %v", colorQA.OptionPercents[red])
	}
	t.Log("Step 5 - Verified responses and analytics")
}
