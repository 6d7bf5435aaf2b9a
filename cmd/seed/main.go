// Command seed creates the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD, and optionally a handful of sample directory entries
// with -sample.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"

	"awc/internal/config"
	"awc/internal/models"
	"awc/internal/store"
)

func main() {
	sample := flag.Bool("sample", false, "also insert sample approved devs")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		slog.Error("ADMIN_EMAIL and ADMIN_PASSWORD environment variables are required")
		os.Exit(1)
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		slog.Error("hashing password failed", "error", err)
		os.Exit(1)
	}

	users := store.NewUserStore(db)
	admin, err := users.Create(ctx, email, string(hash))
	if err != nil {
		slog.Error("seeding admin failed", "error", err)
		os.Exit(1)
	}
	slog.Info("admin seeded", "id", admin.ID, "email", admin.Email)

	if !*sample {
		return
	}

	records := store.NewRecordStore(db)
	for i := 0; i < 5; i++ {
		rec, err := records.Create(ctx, models.Record{
			Name:      fmt.Sprintf("Sample Dev %d", i+1),
			From:      "Córdoba",
			Expertise: models.ExpertiseFullstack,
			Link:      fmt.Sprintf("https://example.com/dev%d", i+1),
			Reason:    "Seeded sample entry used for local development, long enough to satisfy the reason length rule.",
		})
		if err != nil {
			slog.Error("seeding sample dev failed", "error", err)
			os.Exit(1)
		}
		if err := records.Approve(ctx, rec.ID); err != nil {
			slog.Error("approving sample dev failed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("sample devs seeded")
}
