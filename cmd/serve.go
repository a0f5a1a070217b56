package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calloway-legal/firmsite/api"
	"github.com/calloway-legal/firmsite/api/core"
	"github.com/calloway-legal/firmsite/cache"
	"github.com/calloway-legal/firmsite/config"
	"github.com/calloway-legal/firmsite/database"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// initLogging 开发环境输出彩色控制台日志，生产输出 JSON
func initLogging() {
	if config.IsDevelopment() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()
	initLogging()

	db, err := database.NewDB(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize database")
	}
	zlog.Info().Str("type", cfg.DBType).Msg("database connected")

	// 自动DDL
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal().Err(err).Msg("failed to auto migrate database")
	}

	cacheProvider, err := cache.NewProvider(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize cache")
	}
	zlog.Info().Str("provider", cacheProvider.Name()).Msg("cache ready")

	// 初始化 JWT
	if err := api.TokenInit(cfg.JWTSecret, cfg.JWTExpiresIn); err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize JWT")
	}

	deps := &core.ServerDependencies{
		DB:            db,
		CacheProvider: cacheProvider,
	}

	// 启动gin
	server, cleanup := core.StartServer(deps)
	go func() {
		zlog.Info().Str("addr", cfg.Addr()).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
	}

	if err := cacheProvider.Close(); err != nil {
		zlog.Warn().Err(err).Msg("error closing cache")
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			zlog.Warn().Err(err).Msg("error closing database")
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("server forced to shutdown")
	}

	zlog.Info().Msg("server exited successfully")
}
