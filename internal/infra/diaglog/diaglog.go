// Package diaglog grava registros de diagnóstico (um JSON por linha) sem
// bloquear quem registra. Falhas de escrita só aparecem no log do console.
package diaglog

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultBufferSize = 256

type record struct {
	event string
	data  map[string]any
}

type Sink struct {
	logger  *zap.Logger
	file    *os.File
	records chan record
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Open abre (ou cria) o arquivo em modo append e inicia o writer.
func Open(path string, bufferSize int) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir log de diagnóstico %s: %w", path, err)
	}
	s := New(zapcore.AddSync(f), bufferSize)
	s.file = f
	return s, nil
}

func New(w zapcore.WriteSyncer, bufferSize int) *Sink {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		MessageKey:     "event",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout(time.RFC3339Nano),
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, zapcore.DebugLevel)

	s := &Sink{
		logger:  zap.New(core, zap.ErrorOutput(zapcore.AddSync(consoleWriter{}))),
		records: make(chan record, bufferSize),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Record nunca bloqueia: com o buffer cheio o registro é descartado.
func (s *Sink) Record(event string, data map[string]any) {
	if s == nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.records <- record{event: event, data: data}:
	default:
		log.Printf("⚠️ diaglog: buffer cheio, descartando %s", event)
	}
}

func (s *Sink) run() {
	defer close(s.done)
	for r := range s.records {
		s.logger.Info(r.event, fields(r.data)...)
	}
}

// Close drena o que já estava na fila até o prazo do ctx.
func (s *Sink) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.records)
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	_ = s.logger.Sync()
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

func fields(data map[string]any) []zap.Field {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, data[k]))
	}
	return out
}

// consoleWriter recebe os erros internos do zap (ex.: falha de escrita no arquivo).
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	log.Printf("⚠️ diaglog: %s", p)
	return len(p), nil
}
