package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultMaxResponseBody = 10 << 20

var ErrResponseTooLarge = errors.New("resposta do WAHA excede o limite")

type Client struct {
	endpoint   string
	session    string
	httpClient *http.Client
	maxBody    int64
}

// NewClient monta o cliente com a URL final já contendo o parâmetro session.
func NewClient(baseURL, session string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   WithSession(baseURL, session),
		session:    session,
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    DefaultMaxResponseBody,
	}
}

// WithSession acrescenta session=<session> quando a URL ainda não declara uma.
func WithSession(baseURL, session string) string {
	if strings.Contains(baseURL, "session=") {
		return baseURL
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "session=" + url.QueryEscape(session)
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) Session() string {
	return c.session
}

// SendText faz um único POST, sem retentativa. Respostas fora de 2xx voltam como *APIError.
func (c *Client) SendText(ctx context.Context, input SendTextInput) (*SendTextOutput, error) {
	body, err := json.Marshal(sendTextPayload{
		Session: c.session,
		ChatID:  input.ChatID,
		Text:    input.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if input.APIKey != "" {
		req.Header.Set("X-Api-Key", input.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ WAHA: erro ao enviar mensagem para %s: %v", input.ChatID, err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do WAHA: %w", err)
	}
	if int64(len(respBody)) > c.maxBody {
		log.Printf("❌ WAHA: resposta com status %d maior que %d bytes", resp.StatusCode, c.maxBody)
		return nil, fmt.Errorf("%w (%d bytes, status %d)", ErrResponseTooLarge, c.maxBody, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ WAHA: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}

	log.Printf("✅ WAHA: mensagem enviada para %s", input.ChatID)
	return &SendTextOutput{StatusCode: resp.StatusCode, Body: respBody}, nil
}
