package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"asset-management-app/internal"
	"asset-management-app/internal/config"
	"asset-management-app/internal/gateway"
)

func main() {
	// Load and validate configuration
	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	gw, err := gateway.NewPostgres(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Gateway connection failed: %v", err)
	}
	defer gw.Close()

	srv := internal.NewServer(gw, cfg)

	log.Println("Starting Asset Management API server...")
	log.Printf("JWT Issuer: %s", cfg.JWTIssuer)
	log.Printf("JWT Audience: %s", cfg.JWTAudience)
	log.Printf("JWT Expiry: %v", cfg.JWTExpiry)
	log.Printf("Gateway timeout: %v", cfg.GatewayTimeout)
	log.Printf("Listening on %s", cfg.ListenAddr)

	log.Fatal(http.ListenAndServe(cfg.ListenAddr, srv.Router))
}
