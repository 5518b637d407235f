// Command seed-user creates a user account directly in the database,
// optionally backfilling a run of completed sessions so the summary
// views have data to show. Intended for local development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/kpom/kpom/internal/auth"
	"github.com/kpom/kpom/internal/model"
	"github.com/kpom/kpom/internal/repository"
)

type output struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Sessions int    `json:"sessions"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "dev@kpom.local", "User email")
		name        = flag.String("name", "Dev User", "User name")
		password    = flag.String("password", "devpassword", "User password")
		days        = flag.Int("days", 0, "Backfill one 25-minute session per day for this many trailing days")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user, err := ensureUser(ctx, repo, *name, *email, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	seeded := 0
	for i := 0; i < *days; i++ {
		session := &model.Session{
			ID:           ulid.Make().String(),
			UserID:       user.ID,
			MethodID:     model.MethodPomodoro,
			FocusMinutes: 25,
			FinishedAt:   time.Now().AddDate(0, 0, -i),
		}
		if err := repo.CreateSession(ctx, session); err != nil {
			fmt.Fprintln(os.Stderr, "create session:", err)
			os.Exit(1)
		}
		seeded++
	}

	out := output{UserID: user.ID, Email: user.Email, Sessions: seeded}
	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}
	fmt.Printf("user:     %s\nemail:    %s\nsessions: %d\n", out.UserID, out.Email, out.Sessions)
}

func ensureUser(ctx context.Context, repo *repository.Repository, name, email, password string) (*model.User, error) {
	if existing, err := repo.GetUserByEmail(ctx, email); err == nil {
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
