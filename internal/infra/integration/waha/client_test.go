package waha

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSession(t *testing.T) {
	cases := []struct {
		name, base, session, want string
	}{
		{"no query", "http://waha:3000/api/sendText", "default", "http://waha:3000/api/sendText?session=default"},
		{"existing query", "http://waha/api/sendText?foo=bar", "default", "http://waha/api/sendText?foo=bar&session=default"},
		{"already declared", "http://waha/api/sendText?session=ops", "default", "http://waha/api/sendText?session=ops"},
		{"escaped", "http://waha/api/sendText", "my session&x", "http://waha/api/sendText?session=my+session%26x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WithSession(tc.base, tc.session))
		})
	}
}

func TestSendTextSuccess(t *testing.T) {
	var gotPayload map[string]string
	var gotKey, gotSession, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotKey = r.Header.Get("X-Api-Key")
		gotContentType = r.Header.Get("Content-Type")
		gotSession = r.URL.Query().Get("session")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/sendText", "alerts", time.Second)
	out, err := c.SendText(context.Background(), SendTextInput{
		ChatID: "5511912345678@c.us",
		Text:   "PROBLEM: disk full",
		APIKey: "k1",
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, out.StatusCode)
	assert.Equal(t, map[string]any{"id": "msg-1"}, out.Data())
	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "alerts", gotSession)
	assert.Equal(t, map[string]string{
		"session": "alerts",
		"chatId":  "5511912345678@c.us",
		"text":    "PROBLEM: disk full",
	}, gotPayload)
}

func TestSendTextWithoutAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Key"]
		assert.False(t, present)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "default", time.Second)
	out, err := c.SendText(context.Background(), SendTextInput{ChatID: "1@c.us", Text: "x"})

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Data())
}

func TestSendTextAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "default", time.Second)
	out, err := c.SendText(context.Background(), SendTextInput{ChatID: "1@c.us", Text: "x"})

	assert.Nil(t, out)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, map[string]any{"error": "down"}, apiErr.Detail())
}

func TestAPIErrorEmptyBody(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway}
	assert.Equal(t, map[string]string{"error": "Request failed with status code 502"}, err.Detail())
}

func TestSendTextNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "default", time.Second)
	_, err := c.SendText(context.Background(), SendTextInput{ChatID: "1@c.us", Text: "x"})

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestAPIErrorFalsyBody(t *testing.T) {
	for _, body := range []string{"null", "false", "0", `""`} {
		err := &APIError{StatusCode: http.StatusBadGateway, Body: []byte(body)}
		assert.Equal(t, map[string]string{"error": "Request failed with status code 502"}, err.Detail(), body)
	}

	err := &APIError{StatusCode: http.StatusBadGateway, Body: []byte(`{}`)}
	assert.Equal(t, map[string]any{}, err.Detail())
}

func TestSendTextNullErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "default", time.Second)
	_, err := c.SendText(context.Background(), SendTextInput{ChatID: "1@c.us", Text: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, map[string]string{"error": "Request failed with status code 502"}, apiErr.Detail())
}

func TestSendTextResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pad":"` + strings.Repeat("a", 64) + `"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "default", time.Second)
	c.maxBody = 32

	out, err := c.SendText(context.Background(), SendTextInput{ChatID: "1@c.us", Text: "x"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestSendTextResponseAtLimit(t *testing.T) {
	body := `{"pad":"` + strings.Repeat("a", 22) + `"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "default", time.Second)
	c.maxBody = int64(len(body))

	out, err := c.SendText(context.Background(), SendTextInput{ChatID: "1@c.us", Text: "x"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"pad": strings.Repeat("a", 22)}, out.Data())
}
