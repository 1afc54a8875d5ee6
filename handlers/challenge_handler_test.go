package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/challenge"
	"seventyFiveHardAPI/internal/types/user"
)

func TestStartChallengeHandler(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_start", user.StatusNotStarted, 0)
	h := newChallengeHandler(st)

	rr := httptest.NewRecorder()
	h.StartChallenge(rr, authedRequest("POST", "/api/v1/challenge/start", "clerk_start", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp challenge.StartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, user.StatusActive, resp.User.ChallengeStatus)
	assert.Equal(t, 1, resp.User.CurrentChallengeDay)
	require.NotNil(t, resp.CurrentDay)
	assert.Equal(t, 1, resp.CurrentDay.DayNumber)
}

func TestStartChallengeUnknownUser(t *testing.T) {
	h := newChallengeHandler(store.NewMemoryStore())

	rr := httptest.NewRecorder()
	h.StartChallenge(rr, authedRequest("POST", "/api/v1/challenge/start", "clerk_ghost", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "not found")
}

func TestStartChallengeUnauthenticated(t *testing.T) {
	h := newChallengeHandler(store.NewMemoryStore())

	req := httptest.NewRequest("POST", "/api/v1/challenge/start", nil)
	rr := httptest.NewRecorder()
	h.StartChallenge(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestResetChallengeHandler(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_reset", user.StatusActive, 12)
	seedDay(t, st, u.ID, 11, allDoneTasks(), true)
	h := newChallengeHandler(st)

	rr := httptest.NewRecorder()
	h.ResetChallenge(rr, authedRequest("POST", "/api/v1/challenge/reset", "clerk_reset", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp challenge.StartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Challenge reset to Day 1", resp.Message)
	assert.Equal(t, 1, resp.User.CurrentChallengeDay)
	assert.Equal(t, 1, resp.User.TotalResets)
}

func TestCompleteChallengeHandler(t *testing.T) {
	st := store.NewMemoryStore()
	seedUser(t, st, "clerk_done", user.StatusActive, 75)
	h := newChallengeHandler(st)

	rr := httptest.NewRecorder()
	h.CompleteChallenge(rr, authedRequest("POST", "/api/v1/challenge/complete", "clerk_done", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp challenge.CompleteResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, user.StatusCompleted, resp.User.ChallengeStatus)
	assert.Equal(t, 1, resp.User.CompletedChallenges)
}

func TestGetProgressHandler(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_progress", user.StatusActive, 3)
	seedDay(t, st, u.ID, 1, allDoneTasks(), true)
	seedDay(t, st, u.ID, 2, allDoneTasks(), true)
	h := newChallengeHandler(st)

	rr := httptest.NewRecorder()
	h.GetProgress(rr, authedRequest("GET", "/api/v1/challenge/progress", "clerk_progress", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp challenge.ProgressResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Progress)
	assert.Equal(t, 2, resp.Progress.Stats.CompletedDays)
	assert.Equal(t, 2, resp.Progress.Stats.TotalDays)
	assert.InDelta(t, 100.0, resp.Progress.Stats.CompletionRate, 0.01)
}

func TestShareProgressHandler(t *testing.T) {
	st := store.NewMemoryStore()
	u := seedUser(t, st, "clerk_share", user.StatusActive, 30)
	h := newChallengeHandler(st)

	rr := httptest.NewRecorder()
	h.ShareProgress(rr, authedRequest("GET", "/api/v1/challenge/share", "clerk_share", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp challenge.ShareResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.ShareURL, u.ID.String())
	assert.NotEmpty(t, resp.QrCodeBase64)
}
