// cmd/devtoken/main.go: Emite un JWT de desarrollo firmado con JWT_SECRET.
// Los tokens reales los emite el servicio de identidad.
// Uso: go run ./cmd/devtoken -tenant <uuid> [-rol administrador] [-horas 8]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"flota/internal/config"
	"flota/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	tenant := flag.String("tenant", "", "tenant_id (uuid); vacío genera uno nuevo")
	rol := flag.String("rol", middleware.RolAdministrador, "administrador | supervisor | operador")
	horas := flag.Int("horas", 8, "vigencia en horas")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.Env == "production" {
		fmt.Fprintln(os.Stderr, "devtoken no se usa en producción")
		os.Exit(1)
	}

	tenantID := uuid.New()
	if *tenant != "" {
		if tenantID, err = uuid.Parse(*tenant); err != nil {
			fmt.Fprintln(os.Stderr, "tenant inválido:", err)
			os.Exit(1)
		}
	}

	claims := middleware.JWTClaims{
		UserID:   "devtoken",
		TenantID: tenantID.String(),
		Rol:      *rol,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(*horas) * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		fmt.Fprintln(os.Stderr, "firma:", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}
