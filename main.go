package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"notekeep/auth"
	"notekeep/config"
	"notekeep/db"
	"notekeep/handlers"
	"notekeep/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process environment")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("configuration error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	database, closeDB, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("mongodb connection error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()
	slog.Info("mongodb connected")

	if err := db.EnsureIndexes(ctx, database); err != nil {
		slog.Error("index creation error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	a := auth.New(cfg.TokenSecret, cfg.TokenTTL)
	h := handlers.New(store.NewUsers(database), store.NewNotes(database), a)
	r := handlers.NewRouter(h, a)

	slog.Info("server running", slog.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
