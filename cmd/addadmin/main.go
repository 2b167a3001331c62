// Утилита первичной настройки: создает учётную запись администратора,
// поскольку через HTTP API администратора зарегистрировать нельзя.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/soundvault/soundvault/internal/config"
	"github.com/soundvault/soundvault/internal/lib/password"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/migrations"
	"github.com/soundvault/soundvault/internal/models"
	"github.com/soundvault/soundvault/internal/storage"
)

func main() {
	var (
		username = flag.String("username", "", "имя администратора")
		pass     = flag.String("password", "", "пароль администратора")
		email    = flag.String("email", "", "почта администратора")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *username == "" || *pass == "" || *email == "" {
		logger.Error("flags -username, -password and -email are required")
		os.Exit(1)
	}

	cfg := config.MustLoad()

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	codec := password.NewCodec(cfg.Secrets.SecretKey)
	salt, err := password.NewSalt()
	if err != nil {
		logger.Error("failed to generate salt", sl.Err(err))
		os.Exit(1)
	}

	id, err := db.RegisterAdministrator(context.Background(), models.User{
		Username:     *username,
		PasswordHash: codec.Hash(*pass, salt),
		PasswordSalt: salt,
		Email:        *email,
	})
	if err != nil {
		logger.Error("failed to register administrator", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("registered administrator", slog.Int64("user_id", id))
}
