package middleware

import (
	"log"
	"net/http"
	"net/url"
	"os"

	chimw "github.com/go-chi/chi/v5/middleware"
)

var redactedParams = []string{"api_key", "waha_api_key", "wahaApiKey"}

// RedactQuery devolve uma cópia com as credenciais trocadas por "***".
func RedactQuery(q url.Values) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = v
	}
	for _, k := range redactedParams {
		if _, ok := out[k]; ok {
			out.Set(k, "***")
		}
	}
	return out
}

type redactingFormatter struct {
	inner chimw.LogFormatter
}

func (f *redactingFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	if r.URL.RawQuery == "" {
		return f.inner.NewLogEntry(r)
	}
	u := *r.URL
	u.RawQuery = RedactQuery(r.URL.Query()).Encode()

	rc := r.WithContext(r.Context())
	rc.URL = &u
	rc.RequestURI = u.RequestURI()
	return f.inner.NewLogEntry(rc)
}

// NewAccessLogFormatter embrulha o formatter padrão do chi sem vazar api_key na URL.
func NewAccessLogFormatter(logger chimw.LoggerInterface, noColor bool) chimw.LogFormatter {
	return &redactingFormatter{
		inner: &chimw.DefaultLogFormatter{Logger: logger, NoColor: noColor},
	}
}

// AccessLogger substitui o chimw.Logger.
func AccessLogger(next http.Handler) http.Handler {
	return chimw.RequestLogger(NewAccessLogFormatter(log.New(os.Stdout, "", log.LstdFlags), false))(next)
}
