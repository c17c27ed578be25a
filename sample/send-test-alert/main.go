package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	to := os.Getenv("TEST_ALERT_TO")
	if to == "" {
		log.Fatal("❌ TEST_ALERT_TO deve estar configurado no .env")
	}

	relayURL := os.Getenv("RELAY_URL")
	if relayURL == "" {
		relayURL = "http://localhost:3000/send"
	}

	payload := map[string]any{
		"to":    to,
		"text":  fmt.Sprintf("PROBLEM: alerta de teste (%s)", time.Now().Format(time.RFC3339)),
		"group": os.Getenv("TEST_ALERT_GROUP") == "true",
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, relayURL, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Erro ao montar requisição: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("API_KEY"); key != "" {
		req.Header.Set("X-Api-Key", key)
	}

	fmt.Println("🔄 Enviando alerta de teste...")
	fmt.Printf("   Relay: %s\n", relayURL)
	fmt.Printf("   Destino: %s\n\n", to)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Erro ao chamar o relay: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("📬 Status: %d\n%s\n", resp.StatusCode, respBody)

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	fmt.Println("✅ Alerta entregue ao WAHA")
}
