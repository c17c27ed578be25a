package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/xavierca1/waha-alert-relay/internal/infra/http/middleware"
	"github.com/xavierca1/waha-alert-relay/internal/usecase"
)

const maxBodyBytes = 1 << 20

type SendHandler struct {
	UseCase *usecase.SendMessageUseCase
	Sink    usecase.DiagnosticSink
}

func NewSendHandler(uc *usecase.SendMessageUseCase, sink usecase.DiagnosticSink) *SendHandler {
	return &SendHandler{UseCase: uc, Sink: sink}
}

func (h *SendHandler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Printf("⚠️ /send: corpo ignorado (%v)", err)
		body = nil
	}
	src := parseSources(r, body)

	if h.Sink != nil {
		h.Sink.Record("inbound_request", map[string]any{
			"request_id":   requestID,
			"method":       r.Method,
			"path":         r.URL.Path,
			"query":        middleware.RedactQuery(r.URL.Query()).Encode(),
			"remote_addr":  r.RemoteAddr,
			"content_type": r.Header.Get("Content-Type"),
			"body_bytes":   len(body),
			"json_body":    src.JSON != nil,
			"form_body":    src.Form != nil,
		})
	}

	output, err := h.UseCase.Execute(r.Context(), usecase.SendMessageInput{
		RequestID: requestID,
		Sources:   src,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.RecordForward("success", output.ForwardedStatus)
	writeJSON(w, http.StatusOK, output)
}

func (h *SendHandler) writeError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		middleware.RecordRejection(domainErr.Code)
		writeErrorResponse(w, domainErr.Status, domainErr.Message)
		return
	}

	var fwdErr *usecase.ForwardError
	if errors.As(err, &fwdErr) {
		middleware.RecordForward("failed", fwdErr.Status)
		writeJSON(w, fwdErr.Status, map[string]any{
			"error":  "forward_failed",
			"detail": fwdErr.Detail,
		})
		return
	}

	log.Printf("❌ /send: erro inesperado: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":  "forward_failed",
		"detail": map[string]string{"error": err.Error()},
	})
}

// parseSources nunca falha: corpo JSON ou form malformado conta como ausente.
func parseSources(r *http.Request, body []byte) usecase.Sources {
	src := usecase.Sources{
		Header: r.Header,
		Query:  r.URL.Query(),
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return src
	}

	if obj, ok := decodeJSONObject(body); ok {
		src.JSON = obj
		return src
	}

	if acceptsForm(r.Header.Get("Content-Type")) {
		if form, err := url.ParseQuery(string(body)); err == nil {
			src.Form = form
		}
	}
	return src
}

func decodeJSONObject(body []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	// Qualquer coisa depois do primeiro valor torna o corpo inválido.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, false
	}
	return obj, true
}

func acceptsForm(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded"
}
