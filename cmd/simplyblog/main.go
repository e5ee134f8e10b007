package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"simplyblog/internal/adapter/disk"
	adapthttp "simplyblog/internal/adapter/http"
	"simplyblog/internal/adapter/memory"
	"simplyblog/internal/adapter/postgres"
	redisadapter "simplyblog/internal/adapter/redis"
	"simplyblog/internal/app"
	"simplyblog/internal/config"
	"simplyblog/internal/domain"
	"simplyblog/internal/logging"
	"simplyblog/internal/token"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	codec, err := token.NewCodec(cfg.JWTSecret)
	if err != nil {
		slog.Error("token codec", "error", err)
		os.Exit(1)
	}

	var (
		users domain.UserRepository
		posts domain.PostRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			slog.Error("db open", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		users = db
		posts = postgres.NewPostRepo(db)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory store")
		mem := memory.New()
		users = mem
		posts = memory.NewPostRepo(mem)
	}

	var denylist domain.TokenDenylist
	if cfg.RedisAddr != "" {
		rd, err := redisadapter.NewDenylist(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Error("redis denylist", "error", err)
			os.Exit(1)
		}
		defer func() { _ = rd.Close() }()
		denylist = rd
	} else {
		denylist = memory.NewDenylist()
	}

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			if err := denylist.PurgeExpired(context.Background()); err != nil {
				slog.Error("denylist purge", "error", err)
			}
		}
	}()

	files, err := disk.New(cfg.UploadDir)
	if err != nil {
		slog.Error("upload dir", "error", err)
		os.Exit(1)
	}

	authSvc := app.NewAuthService(users, codec, denylist)
	postSvc := app.NewPostService(posts, files)

	sso, err := adapthttp.NewSSO(context.Background(), cfg.OIDC)
	if err != nil {
		slog.Error("oidc discovery", "error", err)
		os.Exit(1)
	}

	h := adapthttp.New(authSvc, postSvc, cfg.PublicDir, cfg.SecureCookies, sso).Handler()

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server", "error", err)
		os.Exit(1)
	}
}
