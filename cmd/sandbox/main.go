// 開発用サンドボックスのエントリポイント。
// ゲートウェイが呼び出す4つのgRPCサービスと認証サービスを1プロセスで起動する。
// データはSQLiteに保存され、起動時に管理者アカウントが作成される。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/nao1215/censudex/internal/config"
	"github.com/nao1215/censudex/internal/sandbox"
)

// shutdownTimeout はグレースフルシャットダウンの待ち時間。
const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "設定ファイルのパス（省略時は ./config.yaml を探す）")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("サンドボックスが異常終了しました", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadSandbox(configPath)
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sandbox.Open(ctx, cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sb, err := sandbox.New(ctx, store, sandbox.Options{
		PublicURL:     cfg.PublicURL,
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		AdminEmail:    cfg.Admin.Email,
		AdminPassword: cfg.Admin.Password,
	}, logger)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("gRPCポートのリッスンに失敗: %w", err)
	}
	grpcServer := sb.NewGRPCServer()
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           sb.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPCサービスを起動します", "addr", lis.Addr().String())
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		logger.Info("認証サービスを起動します", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("シャットダウンを開始します")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
