package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/censudex/internal/backend"
	"github.com/nao1215/censudex/internal/catalog"
	"github.com/nao1215/censudex/internal/telemetry"
	"github.com/nao1215/censudex/pkg/middleware"
)

// shutdownTimeout はグレースフルシャットダウンの待ち時間。
const shutdownTimeout = 10 * time.Second

// Backends はゲートウェイが呼び出すバックエンドのアダプタ。
type Backends struct {
	Identity backend.Identity
	Orders   backend.Orders
	Products backend.Products
	Images   backend.Images
	Auth     backend.Auth
}

// Options はゲートウェイの挙動の設定。
type Options struct {
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
	// ElevatedRoles は注文状態の更新を許可するロール。
	ElevatedRoles []string
	// LegacyEditNotFound が true の場合、商品更新の名前重複以外の失敗をすべて404とする。
	LegacyEditNotFound bool
	// Tracing が true の場合、HTTPハンドラをトレース付きでラップする。
	Tracing bool
}

// Server はAPI GatewayのHTTPサーバー。
// リクエスト間で可変の状態を持たない。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// backends はバックエンドのアダプタ。
	backends Backends
	// catalog は商品の登録・更新のオーケストレーター。
	catalog *catalog.Orchestrator
	// opts はゲートウェイの挙動の設定。
	opts Options
	// logger は構造化ロガー。
	logger *slog.Logger
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(backends Backends, opts Options, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))

	s := &Server{
		router:   router,
		backends: backends,
		catalog:  catalog.NewOrchestrator(backends.Images, backends.Products, logger),
		opts:     opts,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

// Handler はサーバーのHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	if s.opts.Tracing {
		return telemetry.HTTPHandler(s.router, "censudex-gateway")
	}
	return s.router
}

// Run はHTTPサーバーを起動し、ctx がキャンセルされるとグレースフルシャットダウンする。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Gatewayサービスを起動します", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("シャットダウンを開始します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// 認証（認証サービスへのパススルー）
	s.router.POST("/login", s.handleLogin())
	s.router.POST("/validate-token", s.handleValidateToken())
	s.router.POST("/logout", s.handleLogout())

	// クライアント
	clients := s.router.Group("/clients")
	{
		clients.POST("", s.handleCreateClient())
		clients.GET("", s.handleListClients())
		clients.GET("/:id", s.handleGetClient())
		clients.PATCH("/:id", s.handleUpdateClient())
		clients.DELETE("/:id", s.handleDeleteClient())
	}

	// 注文（認証必須）
	authenticated := middleware.Chain(middleware.BearerAuth(s.backends.Auth))
	elevated := middleware.Chain(
		middleware.BearerAuth(s.backends.Auth),
		middleware.RequireRole(s.opts.ElevatedRoles...),
	)
	orders := s.router.Group("/orders")
	{
		orders.POST("", authenticated, s.handleCreateOrder())
		orders.GET("", authenticated, s.handleListOrders())
		orders.GET("/:id", authenticated, s.handleGetOrder())
		orders.PUT("/:id/status", elevated, s.handleUpdateOrderStatus())
		orders.DELETE("/:id", authenticated, s.handleCancelOrder())
	}

	// 商品
	products := s.router.Group("/api/products")
	{
		products.POST("", s.handleCreateProduct())
		products.GET("/all", s.handleListProducts())
		products.GET("/:uuid", s.handleGetProduct())
		products.PATCH("/:uuid", s.handleEditProduct())
		products.DELETE("/:uuid", s.handleDeleteProduct())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
}
