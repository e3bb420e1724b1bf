package test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pokecards/backend/database"
)

// testDB is the shared handle to the throwaway postgres container.
// Schema is migrated once; tests isolate themselves through unique
// users and products.
var testDB *sqlx.DB

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("connecting to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=pokecards",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Printf("purging postgres container: %v", err)
		}
	}()

	dsn := fmt.Sprintf(
		"postgres://postgres:postgres@%s/pokecards?sslmode=disable",
		resource.GetHostPort("5432/tcp"),
	)

	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return err
		}
		testDB = db
		return db.Ping()
	}); err != nil {
		log.Fatalf("connecting to postgres container: %v", err)
	}

	if err := database.Migrate(testDB, "file://../../migrations"); err != nil {
		log.Fatalf("migrating test database: %v", err)
	}

	return m.Run()
}
