package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"asset-management-app/internal/auth"
	"asset-management-app/internal/config"
	"asset-management-app/internal/models"
)

func main() {
	var (
		identityID = flag.String("identity", "", "Identity UUID (required)")
		email      = flag.String("email", "", "Identity email")
		role       = flag.String("role", "management", "Role: admin or management")
		expiryMins = flag.Int("expiry", 1440, "Token expiry in minutes (default: 24 hours)")
		secret     = flag.String("secret", "", "JWT secret (overrides JWT_SECRET env var)")
		issuer     = flag.String("issuer", "", "JWT issuer (overrides JWT_ISS env var)")
		audience   = flag.String("audience", "", "JWT audience (overrides JWT_AUD env var)")
	)
	flag.Parse()

	if *identityID == "" {
		log.Fatal("-identity is required")
	}
	if !models.IsValidRole(models.Role(*role)) {
		log.Fatalf("Invalid role %q, must be one of %v", *role, models.ValidRoles)
	}

	// Load config
	cfg := config.Load()

	// Override with command line flags if provided
	if *secret != "" {
		cfg.JWTSecret = *secret
	}
	if *issuer != "" {
		cfg.JWTIssuer = *issuer
	}
	if *audience != "" {
		cfg.JWTAudience = *audience
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, time.Duration(*expiryMins)*time.Minute)

	token, err := jwtManager.GenerateToken(models.Identity{ID: *identityID, Email: *email}, models.Role(*role))
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("JWT Token generated successfully!\n\n")
	fmt.Printf("Identity: %s\n", *identityID)
	fmt.Printf("Email: %s\n", *email)
	fmt.Printf("Role: %s\n", *role)
	fmt.Printf("Expiry: %d minutes\n", *expiryMins)
	fmt.Printf("Issuer: %s\n", cfg.JWTIssuer)
	fmt.Printf("Audience: %s\n", cfg.JWTAudience)
	fmt.Printf("\nToken:\n%s\n\n", token)

	fmt.Printf("Usage example:\n")
	fmt.Printf("curl -H \"Authorization: Bearer %s\" http://localhost:8080/assets\n", token)
}
