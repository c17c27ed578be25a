package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRedactQuery(t *testing.T) {
	q := url.Values{
		"to":           {"5511"},
		"api_key":      {"topsecret"},
		"waha_api_key": {"wahasecret"},
	}

	out := RedactQuery(q)

	assert.Equal(t, "5511", out.Get("to"))
	assert.Equal(t, "***", out.Get("api_key"))
	assert.Equal(t, "***", out.Get("waha_api_key"))
	assert.Equal(t, "topsecret", q.Get("api_key"), "a query original não pode ser alterada")
}

func TestAccessLogHidesCredentials(t *testing.T) {
	var buf bytes.Buffer
	f := NewAccessLogFormatter(log.New(&buf, "", 0), true)

	var seenKey string
	h := chimw.RequestLogger(f)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenKey = r.URL.Query().Get("api_key")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/send?to=5511&text=oi&api_key=topsecret&waha_api_key=wahasecret", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	assert.Contains(t, line, "/send?")
	assert.Contains(t, line, "to=5511")
	assert.NotContains(t, line, "topsecret")
	assert.NotContains(t, line, "wahasecret")
	assert.Equal(t, "topsecret", seenKey, "o handler continua recebendo a URL original")
}
