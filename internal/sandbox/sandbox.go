package sandbox

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/nao1215/censudex/internal/wire"
	"github.com/nao1215/censudex/pkg/middleware"
)

// Options はサンドボックスの設定。
type Options struct {
	// PublicURL は画像URLの組み立てに使うHTTPサーバーの公開URL。
	PublicURL string
	// JWTSecret はトークンの署名鍵。
	JWTSecret string
	// TokenTTL はトークンの有効期間。
	TokenTTL time.Duration
	// AdminEmail が空でなければ、起動時にこの管理者アカウントを作成する。
	AdminEmail    string
	AdminPassword string
	// HashCost はbcryptのコスト。0の場合は既定値。
	HashCost int
}

// Sandbox は全バックエンドをまとめたもの。
type Sandbox struct {
	Users    *UserService
	Orders   *OrderService
	Products *ProductService
	Images   *ImageService
	Auth     *AuthService

	router *gin.Engine
	logger *slog.Logger
}

// New はストアの上にサンドボックスを組み立て、必要なら管理者アカウントを作成する。
func New(ctx context.Context, store *Store, opts Options, logger *slog.Logger) (*Sandbox, error) {
	users := NewUserService(store, opts.HashCost, logger)
	if opts.AdminEmail != "" {
		if err := users.EnsureAdmin(ctx, opts.AdminEmail, opts.AdminPassword); err != nil {
			return nil, err
		}
	}

	s := &Sandbox{
		Users:    users,
		Orders:   NewOrderService(store, logger),
		Products: NewProductService(store, logger),
		Images:   NewImageService(store, opts.PublicURL, logger),
		Auth:     NewAuthService(store, users, opts.JWTSecret, opts.TokenTTL, logger),
		logger:   logger,
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	s.router = router
	s.setupRoutes()
	return s, nil
}

// RegisterGRPC は4つのgRPCサービスを登録する。
func (s *Sandbox) RegisterGRPC(reg grpc.ServiceRegistrar) {
	wire.RegisterUserServiceServer(reg, s.Users)
	wire.RegisterOrderServiceServer(reg, s.Orders)
	wire.RegisterProductServiceServer(reg, s.Products)
	wire.RegisterImageServiceServer(reg, s.Images)
}

// NewGRPCServer はサービスを登録済みのgRPCサーバーを生成する。
func (s *Sandbox) NewGRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(UnaryLogger(s.logger)))
	srv := grpc.NewServer(opts...)
	s.RegisterGRPC(srv)
	return srv
}

// Handler は認証サービスと画像配信のHTTPハンドラを返す。
func (s *Sandbox) Handler() http.Handler {
	return s.router
}

func (s *Sandbox) setupRoutes() {
	login := s.router.Group("/api/login")
	login.POST("/login", s.Auth.handleLogin)
	login.GET("", s.Auth.handleValidate)
	login.POST("/logout", s.Auth.handleLogout)

	s.router.GET("/images/:id", s.handleImage)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "sandbox"})
	})
}

// handleImage はアップロードされた画像を配信する。
func (s *Sandbox) handleImage(c *gin.Context) {
	data, contentType, err := s.Images.Image(c.Request.Context(), c.Param("id"))
	if errors.Is(err, errImageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "image not found"})
		return
	}
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "画像の配信に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "image unavailable"})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}

// UnaryLogger はgRPCの呼び出しごとにメソッド・結果コード・所要時間をログに出す。
func UnaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		level := slog.LevelInfo
		code := "OK"
		if err != nil {
			level = slog.LevelWarn
			code = status.Code(err).String()
		}
		logger.LogAttrs(ctx, level, "RPC処理完了",
			slog.String("method", info.FullMethod),
			slog.String("code", code),
			slog.Duration("latency", time.Since(start)),
		)
		return resp, err
	}
}
