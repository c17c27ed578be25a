package usecase

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// candidate é uma origem possível de um campo; devolve "" quando não tem valor.
type candidate func() string

func firstNonEmpty(candidates ...candidate) string {
	for _, c := range candidates {
		if v := c(); v != "" {
			return v
		}
	}
	return ""
}

func fromHeader(h http.Header, key string) candidate {
	return func() string { return h.Get(key) }
}

func fromValues(v url.Values, key string) candidate {
	return func() string { return v.Get(key) }
}

func fromJSON(m map[string]any, key string) candidate {
	return func() string { return jsonString(m[key]) }
}

func fromStatic(s string) candidate {
	return func() string { return s }
}

func when(ok bool, c candidate) candidate {
	return func() string {
		if !ok {
			return ""
		}
		return c()
	}
}

// jsonString aceita apenas escalares; objeto, lista e null contam como
// ausentes, assim como false e 0.
func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		return ""
	}
}

func jsonTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return isTruthy(t)
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// ResolveCallerKey segue header → query → form → JSON.
func ResolveCallerKey(src Sources) string {
	return firstNonEmpty(
		fromHeader(src.Header, "X-Api-Key"),
		fromValues(src.Query, "api_key"),
		fromValues(src.Form, "api_key"),
		fromJSON(src.JSON, "api_key"),
	)
}

// ResolveWAHAKey só reaproveita a credencial do chamador quando o /send não
// está protegido por segredo; o fallback final é a chave fixa da configuração.
func ResolveWAHAKey(src Sources, callerKey string, secretConfigured bool, fallback string) string {
	return firstNonEmpty(
		fromHeader(src.Header, "X-Waha-Api-Key"),
		fromValues(src.Query, "waha_api_key"),
		fromValues(src.Form, "waha_api_key"),
		fromValues(src.Form, "wahaApiKey"),
		fromJSON(src.JSON, "waha_api_key"),
		fromJSON(src.JSON, "wahaApiKey"),
		when(!secretConfigured, fromStatic(callerKey)),
		fromStatic(fallback),
	)
}

// ResolveIsGroup: query tem a palavra final, depois form, depois JSON.
func ResolveIsGroup(src Sources) bool {
	isGroup := false
	if v, ok := src.JSON["group"]; ok {
		isGroup = jsonTruthy(v)
	}
	if vs, ok := src.Form["group"]; ok && len(vs) > 0 {
		isGroup = isTruthy(vs[0])
	}
	if vs, ok := src.Query["group"]; ok {
		raw := ""
		if len(vs) > 0 {
			raw = vs[0]
		}
		isGroup = isTruthy(raw)
	}
	return isGroup
}

// Resolve aplica a precedência de cada campo. Não valida nada.
func Resolve(src Sources, secretConfigured bool, fallbackWAHAKey string) Message {
	callerKey := ResolveCallerKey(src)

	return Message{
		To: firstNonEmpty(
			fromValues(src.Query, "to"),
			fromJSON(src.JSON, "to"),
			fromValues(src.Form, "to"),
		),
		Text: firstNonEmpty(
			fromValues(src.Query, "text"),
			fromJSON(src.JSON, "text"),
			fromValues(src.Form, "text"),
		),
		IsGroup:    ResolveIsGroup(src),
		APIKey:     callerKey,
		WAHAAPIKey: ResolveWAHAKey(src, callerKey, secretConfigured, fallbackWAHAKey),
	}
}
