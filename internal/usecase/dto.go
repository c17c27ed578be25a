package usecase

import (
	"net/http"
	"net/url"
)

// Sources são as origens brutas de campos de uma requisição. Form e JSON
// ficam nil quando o corpo não existe ou não pôde ser interpretado.
type Sources struct {
	Header http.Header
	Query  url.Values
	Form   url.Values
	JSON   map[string]any
}

type SendMessageInput struct {
	RequestID string
	Sources   Sources
}

// Message é a tupla canônica depois da resolução de precedência.
type Message struct {
	To         string
	Text       string
	IsGroup    bool
	APIKey     string
	WAHAAPIKey string
}

type SendMessageOutput struct {
	ForwardedStatus int `json:"forwardedStatus"`
	ForwardedData   any `json:"forwardedData"`
}
