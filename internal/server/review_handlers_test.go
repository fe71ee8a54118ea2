package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"nextstep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddReview(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "reviewer@example.com")

	m.reviews.On("ExistsFor", mock.Anything, "scholarship-42", "reviewer@example.com").
		Return(false, nil)
	m.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.ScholarshipID == "scholarship-42" &&
			r.ReviewerEmail == "reviewer@example.com" &&
			r.Rating == 4.5
	})).Return(nil)

	payload := map[string]any{"rating": 4.5, "comment": "Smooth process"}
	resp, _ := doRequest(t, app, "POST", "/add-review/scholarship-42", payload, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	m.reviews.AssertExpectations(t)
}

func TestAddReviewRejectsDuplicate(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "reviewer@example.com")

	m.reviews.On("ExistsFor", mock.Anything, "scholarship-42", "reviewer@example.com").
		Return(true, nil)

	payload := map[string]any{"rating": 5.0, "comment": "Trying again"}
	resp, raw := doRequest(t, app, "POST", "/add-review/scholarship-42", payload, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Review Already Given!", body["message"])
	m.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetScholarshipReviews(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "viewer@example.com")

	m.reviews.On("ListByScholarship", mock.Anything, "scholarship-42").
		Return([]models.Review{{ID: 1, ScholarshipID: "scholarship-42", Rating: 4}}, nil)

	resp, raw := doRequest(t, app, "GET", "/reviews/scholarship-42", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []models.Review
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "scholarship-42", out[0].ScholarshipID)
}

func TestGetMyReviews(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "reviewer@example.com")

	m.reviews.On("ListByReviewer", mock.Anything, "reviewer@example.com").
		Return([]models.Review{{ID: 2, ReviewerEmail: "reviewer@example.com"}}, nil)

	resp, raw := doRequest(t, app, "GET", "/my-reviews/reviewer@example.com", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []models.Review
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
}

func TestUpdateReviewWhitelist(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "reviewer@example.com")

	m.reviews.On("UpdateFields", mock.Anything, uint(3), map[string]interface{}{
		"rating":  3.5,
		"comment": "Revised opinion",
	}).Return(nil)

	// The reviewer identity and scholarship reference are fixed at
	// creation; only the rating, comment, and date can change.
	payload := map[string]any{
		"rating":        3.5,
		"comment":       "Revised opinion",
		"reviewerEmail": "someone-else@example.com",
		"scholarshipId": "scholarship-1",
	}
	resp, _ := doRequest(t, app, "PATCH", "/update-review/3", payload, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m.reviews.AssertExpectations(t)
}

func TestDeleteReview(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "reviewer@example.com")

	m.reviews.On("Delete", mock.Anything, uint(3)).Return(nil)

	resp, _ := doRequest(t, app, "DELETE", "/delete-review/3", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m.reviews.AssertExpectations(t)
}
