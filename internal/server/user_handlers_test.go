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

func TestSaveUserIdempotent(t *testing.T) {
	app, m := newTestApp(t)

	stored := &models.User{ID: 7, Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}

	// First call inserts, second call finds the existing record. Either
	// way the stored record comes back; only the status differs.
	m.users.On("SaveIfAbsent", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "asha@example.com"
	})).Return(stored, true, nil).Once()
	m.users.On("SaveIfAbsent", mock.Anything, mock.Anything).Return(stored, false, nil).Once()

	payload := map[string]any{"name": "Asha", "image": "https://img.example/a.png"}

	resp, raw := doRequest(t, app, "POST", "/save-user/asha@example.com", payload, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var first models.User
	require.NoError(t, json.Unmarshal(raw, &first))
	assert.Equal(t, uint(7), first.ID)

	resp, raw = doRequest(t, app, "POST", "/save-user/asha@example.com", payload, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second models.User
	require.NoError(t, json.Unmarshal(raw, &second))
	assert.Equal(t, first.ID, second.ID)

	m.users.AssertExpectations(t)
}

func TestGetUserRole(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "viewer@example.com")

	m.users.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(&models.User{Email: "admin@example.com", Role: models.RoleAdmin}, nil)
	m.users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, nil)

	resp, raw := doRequest(t, app, "GET", "/user-role/admin@example.com", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, models.RoleAdmin, body["role"])

	// Unknown user is a null role, not a 404.
	resp, raw = doRequest(t, app, "GET", "/user-role/ghost@example.com", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Nil(t, body["role"])
}

func TestGetUserMissReturnsNull(t *testing.T) {
	app, m := newTestApp(t)

	m.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	resp, raw := doRequest(t, app, "GET", "/user/nobody@example.com", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", string(raw))
}

func TestUpdateUserIgnoresRoleInPayload(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "asha@example.com")

	m.users.On("UpdateProfile", mock.Anything, "asha@example.com", "Asha K", "https://img.example/new.png").
		Return(nil)

	// A role key smuggled into the profile update must never reach the
	// repository; only name and image are forwarded.
	payload := map[string]any{
		"name":  "Asha K",
		"image": "https://img.example/new.png",
		"role":  models.RoleAdmin,
	}
	resp, _ := doRequest(t, app, "PATCH", "/update-user/asha@example.com", payload, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m.users.AssertExpectations(t)
	m.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRole(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "admin@example.com")

	m.users.On("UpdateRole", mock.Anything, "asha@example.com", models.RoleModerator).Return(nil)

	resp, _ := doRequest(t, app, "PATCH", "/update-role/asha@example.com",
		map[string]any{"role": models.RoleModerator}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, "PATCH", "/update-role/asha@example.com",
		map[string]any{"role": ""}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	m.users.AssertExpectations(t)
}

func TestGetAllUsersPassesFilter(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "admin@example.com")

	m.users.On("List", mock.Anything, "admin@example.com", models.RoleModerator).
		Return([]models.User{{ID: 1, Email: "mod@example.com", Role: models.RoleModerator}}, nil)

	resp, raw := doRequest(t, app, "GET", "/all-users/admin@example.com?sort=Moderator", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "mod@example.com", users[0].Email)
}

func TestDeleteUserInvalidID(t *testing.T) {
	app, m := newTestApp(t)
	token := bearerToken(t, "admin@example.com")

	resp, _ := doRequest(t, app, "DELETE", "/delete-user/not-a-number", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	m.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
