package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/waha-alert-relay/internal/config"
	"github.com/xavierca1/waha-alert-relay/internal/infra/diaglog"
	"github.com/xavierca1/waha-alert-relay/internal/infra/http/handlers"
	"github.com/xavierca1/waha-alert-relay/internal/infra/http/router"
	"github.com/xavierca1/waha-alert-relay/internal/infra/integration/waha"
	"github.com/xavierca1/waha-alert-relay/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	// 1. Log de diagnóstico (opcional; falha aqui não derruba o serviço)
	var sink *diaglog.Sink
	if cfg.DebugLogEnabled() {
		sink, err = diaglog.Open(cfg.DebugLogFile, diaglog.DefaultBufferSize)
		if err != nil {
			log.Printf("⚠️ %v; seguindo sem log de diagnóstico", err)
			sink = nil
		}
	}

	// 2. Cliente WAHA e UseCase
	client := waha.NewClient(cfg.WAHAURL, cfg.WAHASession, cfg.ForwardTimeout)
	sendUC := usecase.NewSendMessageUseCase(client, sinkOrNil(sink), cfg.APIKey, cfg.WAHAAPIKey)

	// 3. Handlers e Router
	r := router.New(
		handlers.NewHealthHandler(),
		handlers.NewSendHandler(sendUC, sinkOrNil(sink)),
		router.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			MetricsEnabled: cfg.MetricsEnabled,
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 waha-alert-relay rodando na porta %s", cfg.Port)
		log.Printf("📨 Encaminhando para WAHA em %s session=%s", cfg.WAHAURL, cfg.WAHASession)
		if cfg.APIKey == "" {
			log.Println("⚠️ API_KEY não configurada: /send está aberto")
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Erro no servidor: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("⚠️ Encerrando servidor...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Erro no shutdown: %v", err)
	}
	if err := sink.Close(ctx); err != nil {
		log.Printf("⚠️ Erro ao fechar log de diagnóstico: %v", err)
	}
}

// sinkOrNil evita guardar um *Sink nil dentro da interface.
func sinkOrNil(s *diaglog.Sink) usecase.DiagnosticSink {
	if s == nil {
		return nil
	}
	return s
}
