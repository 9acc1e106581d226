package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsService_CreateUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/events/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Event created",
			"event":   map[string]interface{}{"id": "e-1", "title": "Birthday"},
		})
	}), &fakeTokens{token: "T1"})

	event, err := NewEventsService(client).Create(context.Background(), EventCreateRequest{
		Title:     "Birthday",
		StartDate: "2026-09-01T18:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "e-1", event.ID)
	assert.Equal(t, "Birthday", event.Title)
}

func TestEventsService_MineUnwrapsEvents(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"events": []map[string]interface{}{{"id": "e-1"}, {"id": "e-2"}},
		})
	}), &fakeTokens{token: "T1"})

	events, err := NewEventsService(client).Mine(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e-2", events[1].ID)
}

func TestEventsService_GetDefaultsMissingCollections(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"event": map[string]interface{}{"id": "e-1"},
		})
	}), &fakeTokens{token: "T1"})

	detail, err := NewEventsService(client).Get(context.Background(), "e-1")
	require.NoError(t, err)
	assert.NotNil(t, detail.Participants)
	assert.NotNil(t, detail.PendingInvitations)
}

func TestEventsService_InviteResultNormalizesCasing(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "CamelCase", body: `{"success":true,"message":"invited","userExists":true,"inviteLink":"https://x/i/abc"}`},
		{name: "PascalCase", body: `{"Success":true,"Message":"invited","UserExists":true,"InviteLink":"https://x/i/abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}), &fakeTokens{token: "T1"})

			result, err := NewEventsService(client).InviteParticipant(context.Background(), "e-1", "b@c.com")
			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, "invited", result.Message)
			assert.True(t, result.UserExists)
			assert.Equal(t, "https://x/i/abc", result.InviteLink)
		})
	}
}

func TestEventsService_RescindInvitationEscapesEmail(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"success":true,"message":"rescinded"}`))
	}), &fakeTokens{token: "T1"})

	err := NewEventsService(client).RescindInvitation(context.Background(), "e-1", "b+c@d.com")
	require.NoError(t, err)
	assert.Equal(t, "/events/e-1/invitations/"+url.PathEscape("b+c@d.com"), gotPath)
}

func TestMessagesService_ListToleratesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "BareArray", body: `[{"id":"m-1","content":"hi"},{"id":"m-2","content":"yo"}]`, want: 2},
		{name: "WrappedObject", body: `{"messages":[{"id":"m-1","content":"hi"}]}`, want: 1},
		{name: "WrappedEmpty", body: `{"messages":null}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/events/e-1/messages/", r.URL.Path)
				w.Write([]byte(tt.body))
			}), &fakeTokens{token: "T1"})

			messages, err := NewMessagesService(client).List(context.Background(), "e-1")
			require.NoError(t, err)
			assert.Len(t, messages, tt.want)
		})
	}
}

func TestMessagesService_CreateToleratesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "BareMessage", body: `{"id":"m-1","content":"hello"}`},
		{name: "WrappedMessage", body: `{"message":{"id":"m-1","content":"hello"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}), &fakeTokens{token: "T1"})

			message, err := NewMessagesService(client).Create(context.Background(), "e-1", "hello", "")
			require.NoError(t, err)
			assert.Equal(t, "m-1", message.ID)
			assert.Equal(t, "hello", message.Content)
		})
	}
}

func TestGiftsService_CategoriesIsPublic(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/gifts/categories", r.URL.Path)
		w.Write([]byte(`[{"id":"c-1","name_key":"gifts.tech"}]`))
	}), &fakeTokens{token: "T1"})

	categories, err := NewGiftsService(client).Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Empty(t, gotAuth, "category browsing requires no login")
}

func TestGiftsService_SuggestionsBuildsQuery(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}), &fakeTokens{token: "T1"})

	_, err := NewGiftsService(client).Suggestions(context.Background(), "c-1", "e-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", gotQuery.Get("category_id"))
	assert.Equal(t, "e-1", gotQuery.Get("event_id"))
}
