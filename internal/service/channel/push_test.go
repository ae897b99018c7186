package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"bugtrail/internal/config"
)

func TestExternalPriority(t *testing.T) {
	assert.Equal(t, 2, externalPriority(1))
	assert.Equal(t, 4, externalPriority(2))
	assert.Equal(t, 6, externalPriority(3))
	assert.Equal(t, 8, externalPriority(4))
	assert.Equal(t, 1, externalPriority(0))
	assert.Equal(t, 10, externalPriority(6))
}

func TestPushChannel_Send(t *testing.T) {
	var gotPayload pushPayload
	var gotToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(pushTokenHeader)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/message", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := &config.Config{PushServerURL: srv.URL, PushAppToken: "app-token"}
	ch := NewPushChannel(cfg, zerolog.Nop())

	t.Run("delivers with the global token and mapped priority", func(t *testing.T) {
		ok := ch.Send(context.Background(), Message{
			Title:    "Bug assigned",
			Body:     "Details",
			Priority: 4,
		}, Recipient{ID: uuid.New(), DisplayName: "Dana"})

		assert.True(t, ok)
		assert.Equal(t, "app-token", gotToken)
		assert.Equal(t, "Bug assigned", gotPayload.Title)
		assert.Equal(t, 8, gotPayload.Priority)
	})

	t.Run("per-user token overrides the global default", func(t *testing.T) {
		ok := ch.Send(context.Background(), Message{Title: "t", Body: "b", Priority: 1}, Recipient{
			ID:        uuid.New(),
			PushToken: "user-token",
		})

		assert.True(t, ok)
		assert.Equal(t, "user-token", gotToken)
		assert.Equal(t, 2, gotPayload.Priority)
	})
}

func TestPushChannel_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := &config.Config{PushServerURL: srv.URL, PushAppToken: "app-token"}
	ch := NewPushChannel(cfg, zerolog.Nop())

	ok := ch.Send(context.Background(), Message{Title: "t", Priority: 2}, Recipient{ID: uuid.New()})
	assert.False(t, ok)
}

func TestPushChannel_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cfg := &config.Config{PushServerURL: srv.URL, PushAppToken: "app-token"}
	ch := NewPushChannel(cfg, zerolog.Nop())

	ok := ch.Send(context.Background(), Message{Title: "t", Priority: 2}, Recipient{ID: uuid.New()})
	assert.False(t, ok)
}

func TestPushChannel_Enabled(t *testing.T) {
	ch := NewPushChannel(&config.Config{}, zerolog.Nop())
	assert.False(t, ch.Enabled())

	ch = NewPushChannel(&config.Config{PushServerURL: "http://push.local"}, zerolog.Nop())
	assert.False(t, ch.Enabled())

	ch = NewPushChannel(&config.Config{PushServerURL: "http://push.local", PushAppToken: "tok"}, zerolog.Nop())
	assert.True(t, ch.Enabled())
}
