package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"socarchive/internal/config"
	models "socarchive/internal/domain/models/catalog"
	"socarchive/internal/repository/postgres"
	postgresCatalog "socarchive/internal/repository/postgres/catalog"
)

//go:embed categories.yaml
var defaultSeed []byte

type seedFile struct {
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
}

// Seeds the category table with the competition's standard fields.
// Existing categories with the same name are skipped, so re-running
// against a populated database is safe.
func main() {
	_ = godotenv.Load()

	var seedPath string
	flag.StringVar(&seedPath, "file", "", "path to a category seed file (defaults to the embedded set)")
	flag.Parse()

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	data := defaultSeed
	if seedPath != "" {
		var err error
		if data, err = os.ReadFile(seedPath); err != nil {
			log.Fatalf("Failed to read seed file: %v", err)
		}
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}
	if len(seed.Categories) == 0 {
		log.Fatal("Seed file contains no categories")
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	migrateURL := strings.Replace(cfg.DatabaseURL, "postgres://", "pgx5://", 1)
	if err := postgres.Migrate(migrateURL, logger); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	repo := postgresCatalog.NewCategoryRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	})

	existing, err := repo.List(ctx, true)
	if err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}
	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Name] = true
	}

	created := 0
	for _, entry := range seed.Categories {
		if present[entry.Name] {
			logger.Info("category already present", "name", entry.Name)
			continue
		}
		category := &models.Category{
			ID:          uuid.NewString(),
			Name:        entry.Name,
			Description: entry.Description,
			Active:      true,
			CreatedAt:   time.Now().UTC(),
		}
		if err := repo.Create(ctx, category); err != nil {
			log.Fatalf("Failed to create category %q: %v", entry.Name, err)
		}
		logger.Info("category created", "name", entry.Name, "category_id", category.ID)
		created++
	}

	fmt.Printf("seed complete: %d created, %d skipped\n", created, len(seed.Categories)-created)
}
