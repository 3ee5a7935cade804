// Command admin provisions a superuser account directly through the service
// layer, for bootstrapping a fresh deployment.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/mvaldesc/conecta-api/internal/logging"
	"github.com/mvaldesc/conecta-api/internal/server/config"
	"github.com/mvaldesc/conecta-api/internal/server/repositories/repomanager"
	"github.com/mvaldesc/conecta-api/internal/server/services"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt + "\n> ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword() (string, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func run() error {
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)

	username, err := promptLine(reader, "Enter username")
	if err != nil {
		return err
	}
	email, err := promptLine(reader, "Enter email")
	if err != nil {
		return err
	}
	password, err := promptPassword()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	userService := services.NewUserService(db, rm, cfg, logger)

	user, err := userService.CreateSuperuser(ctx, username, email, password, cfg.SuperuserKey)
	if err != nil {
		return err
	}

	fmt.Printf("Superuser %s created (id %s)\n", user.Username, user.ID)
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
