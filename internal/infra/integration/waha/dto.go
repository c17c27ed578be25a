package waha

import (
	"encoding/json"
	"fmt"
)

type SendTextInput struct {
	ChatID string // Ex: "5511912345678@c.us"
	Text   string
	// APIKey vai no header X-Api-Key quando preenchida.
	APIKey string
}

type sendTextPayload struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
}

type SendTextOutput struct {
	StatusCode int
	Body       []byte
}

// Data devolve o corpo decodificado como JSON ou, se não for JSON, como string.
func (o *SendTextOutput) Data() any {
	return decodeBody(o.Body)
}

// APIError representa uma resposta fora da faixa 2xx do WAHA.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("waha api error: %d", e.StatusCode)
}

// Detail segue a mesma regra de Data; corpo vazio ou "falso" (null, false,
// 0, "") vira {"error": <mensagem>}.
func (e *APIError) Detail() any {
	if d := decodeBody(e.Body); !isFalsy(d) {
		return d
	}
	return map[string]string{"error": fmt.Sprintf("Request failed with status code %d", e.StatusCode)}
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}

func decodeBody(body []byte) any {
	if len(body) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}
