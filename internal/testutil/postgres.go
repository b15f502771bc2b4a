// Package testutil contiene helpers de test compartidos entre paquetes.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresDSN devuelve un DSN de una base vacía para tests de integración.
// Usa VPET_TEST_DSN si está definido; si no, levanta un contenedor postgres:16-alpine.
// Con -short, o sin Docker disponible, el test se saltea.
func PostgresDSN(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("VPET_TEST_DSN"); dsn != "" {
		return dsn
	}
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}

	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "vpet",
			"POSTGRES_PASSWORD": "vpet",
			"POSTGRES_DB":       "vpet",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	t.Logf("postgres container started [%s]", time.Since(start))
	return fmt.Sprintf("postgres://vpet:vpet@%s:%d/vpet?sslmode=disable", host, port.Int())
}
