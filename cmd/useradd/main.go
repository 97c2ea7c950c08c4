// Command useradd provisions a login for the gradebook web app.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"gradebook/internal/auth"
	"gradebook/internal/config"
	"gradebook/internal/storage"
)

func main() {
	cfg := config.Load()

	dbPath := flag.String("db", cfg.DBPath, "path to the SQLite database")
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "password (defaults to $GRADEBOOK_PASSWORD)")
	flag.Parse()
	if *password == "" {
		*password = os.Getenv("GRADEBOOK_PASSWORD")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := storage.NewSQLite(*dbPath)
	if err != nil {
		logger.Fatal("db open failed", zap.String("path", *dbPath), zap.Error(err))
	}
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Fatal("password hash failed", zap.Error(err))
	}

	user, err := db.CreateUser(context.Background(), *username, hash)
	if errors.Is(err, storage.ErrUserExists) {
		logger.Fatal("user already exists", zap.String("username", *username))
	}
	if err != nil {
		logger.Fatal("create user failed", zap.Error(err))
	}
	logger.Info("user created", zap.Int64("id", user.ID), zap.String("username", user.Username))
}
