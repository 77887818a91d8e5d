//go:build integration_pg

// Package pgtest starts a throwaway Postgres with the doomscroll schema for
// integration tests. Build with -tags integration_pg.
package pgtest

import (
	"context"
	_ "embed"
	"fmt"
	"testing"
	"time"

	"doomscroll/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

//go:embed schema.sql
var schema string

// Start runs postgres:16-alpine and returns its DSN; the container is
// terminated on test cleanup
func Start(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "doomscroll",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/doomscroll?sslmode=disable", host, port.Port())
}

// Open starts a container, opens a Store on it and applies the schema
func Open(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: Start(t), MaxConns: 4}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	if _, err := st.PG.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return st
}
