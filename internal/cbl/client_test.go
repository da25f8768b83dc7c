package cbl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	level string
	msg   string
}

type fakeRecorder struct {
	events []recordedEvent
}

func (r *fakeRecorder) Debugf(format string, args ...interface{}) {
	r.events = append(r.events, recordedEvent{"debug", fmt.Sprintf(format, args...)})
}

func (r *fakeRecorder) Errorf(format string, args ...interface{}) {
	r.events = append(r.events, recordedEvent{"error", fmt.Sprintf(format, args...)})
}

func (r *fakeRecorder) count(level string) int {
	n := 0
	for _, e := range r.events {
		if e.level == level {
			n++
		}
	}
	return n
}

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

// newUpstream serves body for every request and records what was asked.
func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *int32, *graphqlRequest) {
	t.Helper()
	var calls int32
	var last graphqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_ = json.NewDecoder(r.Body).Decode(&last)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &last
}

const fullResponse = `{
  "data": {
    "steamUser": {
      "id": "76561198000000000",
      "name": "Raccoon",
      "avatarFull": "https://avatars.example/raccoon.jpg",
      "reputationPoints": 12.5,
      "riskRating": 3,
      "reputationRank": 42,
      "activeBans": {"edges": [
        {"node": {"id": "ban-2", "created": "2024-03-01T10:00:00.000Z", "expires": null, "reason": null,
          "banList": {"name": "Main", "organisation": {"name": "Org A", "discord": null}}}},
        {"node": {"id": "ban-1", "created": 1704067200000, "expires": "2030-01-01T00:00:00Z", "reason": "Cheating",
          "banList": {"name": "Main", "organisation": {"name": "Org B", "discord": "https://discord.gg/orgb"}}}}
      ]},
      "expiredBans": {"edges": [
        {"node": {"id": "ban-0", "created": "2020-05-05T00:00:00Z", "expires": null, "reason": "Toxicity",
          "banList": {"name": "Old", "organisation": {"name": "Org C", "discord": null}}}}
      ]}
    }
  }
}`

func TestClientFetch(t *testing.T) {
	srv, calls, last := newUpstream(t, http.StatusOK, fullResponse)
	rec := &fakeRecorder{}
	c := NewClient(srv.URL, srv.Client(), rec)

	profile, err := c.Fetch(context.Background(), "76561198000000000")
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(calls), "exactly one request per fetch")
	assert.Equal(t, "76561198000000000", last.Variables["id"])
	assert.Contains(t, last.Query, "activeBans: bans(")
	assert.Contains(t, last.Query, "expiredBans: bans(")

	assert.Equal(t, "Raccoon", profile.Name)
	assert.Equal(t, "Raccoon", profile.DisplayName())
	assert.Equal(t, "https://avatars.example/raccoon.jpg", profile.AvatarURL)
	assert.Equal(t, 12.5, profile.ReputationPoints)
	assert.Equal(t, RiskRating(3), profile.RiskRating)
	require.NotNil(t, profile.ReputationRank)
	assert.Equal(t, 42, *profile.ReputationRank)

	require.Len(t, profile.ActiveBans, 2)
	assert.Equal(t, "ban-2", profile.ActiveBans[0].ID, "upstream order is preserved")
	assert.Nil(t, profile.ActiveBans[0].Expires)
	assert.Empty(t, profile.ActiveBans[0].Reason)
	assert.Empty(t, profile.ActiveBans[0].OrganisationDiscord)
	assert.Equal(t, "Org A", profile.ActiveBans[0].OrganisationName)

	second := profile.ActiveBans[1]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), second.Created.UTC())
	require.NotNil(t, second.Expires)
	assert.Equal(t, 2030, second.Expires.Year())
	assert.Equal(t, "Cheating", second.Reason)
	assert.Equal(t, "https://discord.gg/orgb", second.OrganisationDiscord)

	require.Len(t, profile.ExpiredBans, 1)
	assert.Equal(t, "Old", profile.ExpiredBans[0].BanListName)

	assert.Equal(t, 2, rec.count("debug"))
	assert.Zero(t, rec.count("error"))
}

func TestClientFetch_NotFound(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `{"data": {"steamUser": null}}`)
	rec := &fakeRecorder{}
	c := NewClient(srv.URL, srv.Client(), rec)

	profile, err := c.Fetch(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrFetchFailed)
	assert.Nil(t, profile)
	assert.Zero(t, rec.count("error"), "not found is not logged as an error")
}

func TestClientFetch_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "graphql error",
			status: http.StatusOK,
			body:   `{"data": null, "errors": [{"message": "boom"}]}`,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `<html>bad gateway</html>`,
		},
		{
			name:   "malformed date",
			status: http.StatusOK,
			body: `{"data": {"steamUser": {"id": "1", "activeBans": {"edges": [
				{"node": {"id": "b", "created": "yesterday-ish"}}]}, "expiredBans": {"edges": []}}}}`,
		},
		{
			name:   "missing created",
			status: http.StatusOK,
			body: `{"data": {"steamUser": {"id": "1", "activeBans": {"edges": [
				{"node": {"id": "b", "created": null}}]}, "expiredBans": {"edges": []}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newUpstream(t, tt.status, tt.body)
			rec := &fakeRecorder{}
			c := NewClient(srv.URL, srv.Client(), rec)

			profile, err := c.Fetch(context.Background(), "1")
			require.ErrorIs(t, err, ErrFetchFailed)
			assert.Nil(t, profile)
			assert.Equal(t, 1, rec.count("error"), "cause is recorded once")
		})
	}
}

func TestClientFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := &fakeRecorder{}
	c := NewClient(url, nil, rec)

	_, err := c.Fetch(context.Background(), "1")
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, 1, rec.count("error"))
}

func TestClientFetch_EmptyID(t *testing.T) {
	srv, calls, _ := newUpstream(t, http.StatusOK, fullResponse)
	c := NewClient(srv.URL, srv.Client(), &fakeRecorder{})

	_, err := c.Fetch(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyPlayerID)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestClientFetch_UnknownRiskRating(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `{"data": {"steamUser": {"id": "1", "riskRating": 7,
		"activeBans": {"edges": []}, "expiredBans": {"edges": []}}}}`)
	c := NewClient(srv.URL, srv.Client(), &fakeRecorder{})

	profile, err := c.Fetch(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", profile.RiskRating.Label())
	assert.Nil(t, profile.ReputationRank)
	assert.Equal(t, "1", profile.DisplayName())
	assert.Empty(t, profile.ActiveBans)
}
