// Censudex API Gatewayのエントリポイント。
// クライアント、注文、商品、画像の各gRPCサービスと認証サービス（HTTP）の前段に立ち、
// REST/JSONのAPIを公開する。外部からアクセス可能な唯一のサービスとなる。
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nao1215/censudex/internal/backend"
	"github.com/nao1215/censudex/internal/config"
	"github.com/nao1215/censudex/internal/gateway"
	"github.com/nao1215/censudex/internal/telemetry"
	"github.com/nao1215/censudex/pkg/httpclient"
)

func main() {
	configPath := flag.String("config", "", "設定ファイルのパス（省略時は ./config.yaml を探す）")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("Gatewayサービスが異常終了しました", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer(cfg.Telemetry.Enabled, cfg.Telemetry.ServiceName, nil, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warn("トレースの終了に失敗", "error", err)
		}
	}()

	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.Telemetry.Enabled {
		dialOpts = append(dialOpts, telemetry.GRPCDialOption())
	}

	// 同じ接続先のバックエンドは1本の接続を共有する
	conns := map[string]*grpc.ClientConn{}
	defer func() {
		for _, cc := range conns {
			_ = cc.Close()
		}
	}()
	dial := func(target string) (*grpc.ClientConn, error) {
		if cc, ok := conns[target]; ok {
			return cc, nil
		}
		cc, err := grpc.NewClient(target, dialOpts...)
		if err != nil {
			return nil, fmt.Errorf("gRPC接続の作成に失敗 (%s): %w", target, err)
		}
		conns[target] = cc
		return cc, nil
	}

	clientsConn, err := dial(cfg.Backends.Clients)
	if err != nil {
		return err
	}
	ordersConn, err := dial(cfg.Backends.Orders)
	if err != nil {
		return err
	}
	productsConn, err := dial(cfg.Backends.Products)
	if err != nil {
		return err
	}
	imagesConn, err := dial(cfg.Backends.Images)
	if err != nil {
		return err
	}

	httpOpts := []httpclient.Option{httpclient.WithTimeout(cfg.Backends.AuthTimeout)}
	if cfg.Telemetry.Enabled {
		httpOpts = append(httpOpts, httpclient.WithTransport(telemetry.HTTPTransport(http.DefaultTransport)))
	}

	server := gateway.NewServer(gateway.Backends{
		Identity: backend.NewIdentityClient(clientsConn),
		Orders:   backend.NewOrderClient(ordersConn),
		Products: backend.NewProductClient(productsConn),
		Images:   backend.NewImageClient(imagesConn),
		Auth:     backend.NewAuthClient(httpclient.New(cfg.Backends.Auth, httpOpts...)),
	}, gateway.Options{
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		ElevatedRoles:      cfg.Auth.ElevatedRoles,
		LegacyEditNotFound: cfg.Products.LegacyEditNotFound,
		Tracing:            cfg.Telemetry.Enabled,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg.Server.Addr())
}
