package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/waha-alert-relay/internal/infra/integration/waha"
)

type SendMessageUseCase struct {
	Forwarder  Forwarder
	Sink       DiagnosticSink
	APIKey     string
	WAHAAPIKey string
}

func NewSendMessageUseCase(forwarder Forwarder, sink DiagnosticSink, apiKey, wahaAPIKey string) *SendMessageUseCase {
	return &SendMessageUseCase{
		Forwarder:  forwarder,
		Sink:       sink,
		APIKey:     apiKey,
		WAHAAPIKey: wahaAPIKey,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error) {
	msg := Resolve(input.Sources, uc.APIKey != "", uc.WAHAAPIKey)

	if err := Authorize(uc.APIKey, msg.APIKey); err != nil {
		return nil, err
	}

	if msg.To == "" || msg.Text == "" {
		return nil, ErrMissingField
	}

	digits := SanitizeDestination(msg.To)
	if digits == "" {
		return nil, ErrInvalidDestination
	}
	chatID := ChatID(digits, msg.IsGroup)

	uc.record("forward_attempt", map[string]any{
		"request_id":   input.RequestID,
		"chat_id":      chatID,
		"group":        msg.IsGroup,
		"text":         msg.Text,
		"with_api_key": msg.WAHAAPIKey != "",
	})

	out, err := uc.Forwarder.SendText(ctx, waha.SendTextInput{
		ChatID: chatID,
		Text:   msg.Text,
		APIKey: msg.WAHAAPIKey,
	})
	if err != nil {
		fwdErr := toForwardError(err)
		log.Printf("❌ Falha ao encaminhar para %s (status %d): %v", chatID, fwdErr.Status, err)
		uc.record("forward_error", map[string]any{
			"request_id": input.RequestID,
			"chat_id":    chatID,
			"status":     fwdErr.Status,
			"detail":     fwdErr.Detail,
		})
		return nil, fwdErr
	}

	data := out.Data()
	uc.record("forward_result", map[string]any{
		"request_id": input.RequestID,
		"chat_id":    chatID,
		"status":     out.StatusCode,
		"data":       data,
	})

	return &SendMessageOutput{
		ForwardedStatus: out.StatusCode,
		ForwardedData:   data,
	}, nil
}

func (uc *SendMessageUseCase) record(event string, data map[string]any) {
	if uc.Sink == nil {
		return
	}
	uc.Sink.Record(event, data)
}

func toForwardError(err error) *ForwardError {
	var apiErr *waha.APIError
	if errors.As(err, &apiErr) {
		return &ForwardError{
			Status: apiErr.StatusCode,
			Detail: apiErr.Detail(),
			Err:    err,
		}
	}
	return &ForwardError{
		Status: http.StatusInternalServerError,
		Detail: map[string]string{"error": err.Error()},
		Err:    err,
	}
}
