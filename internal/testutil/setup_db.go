package testutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"gallery_wallet/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// SetupTestDB запускает контейнер Postgres, ждёт его готовности, применяет миграции и возвращает пул и функцию очистки.
// В режиме -short тест пропускается.
func SetupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()
	postgresC, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("gallery_wallet"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("secret"),
	)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	dbURL, err := postgresC.ConnectionString(ctx, "sslmode=disable")
	if !assert.NoError(t, err) {
		_ = postgresC.Terminate(ctx)
		t.FailNow()
	}

	var pool *pgxpool.Pool
	for i := 0; i < 20; i++ {
		pool, err = pgxpool.New(ctx, dbURL)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				break
			}
			pool.Close()
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		// Если не удалось подключиться, вывести логи контейнера
		fmt.Fprintln(os.Stderr, "[testutil] Postgres did not become ready in time. Container logs:")
		logs, logErr := postgresC.Logs(ctx)
		if logErr == nil {
			io.Copy(os.Stderr, logs)
		} else {
			fmt.Fprintln(os.Stderr, "[testutil] Failed to get container logs:", logErr)
		}
		_ = postgresC.Terminate(ctx)
		assert.NoError(t, err, "Postgres did not become ready in time")
		t.FailNow()
	}

	// Миграции
	if !assert.NoError(t, repository.Migrate(ctx, pool)) {
		pool.Close()
		_ = postgresC.Terminate(ctx)
		t.FailNow()
	}

	return pool, func() {
		pool.Close()
		postgresC.Terminate(ctx)
	}
}
