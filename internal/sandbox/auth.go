package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/middleware"
)

// Claims はサンドボックスが発行するJWTのクレーム。
// Subject にユーザーID、ID（jti）に失効管理用の識別子を入れる。
type Claims struct {
	jwt.RegisteredClaims
	// Role はユーザーのロール（"admin" または "client"）。
	Role string `json:"role"`
}

// AuthService は認証サービスのHTTP実装。
type AuthService struct {
	users  *UserService
	store  *Store
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// NewAuthService は新しい AuthService を生成する。
func NewAuthService(store *Store, users *UserService, secret string, ttl time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// loginResponse はログイン成功時のボディ。
type loginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expiresAt"`
}

// validateResponse はトークン検証成功時のボディ。
type validateResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// handleLogin はメールアドレスとパスワードを照合してトークンを発行する。
func (a *AuthService) handleLogin(c *gin.Context) {
	var in dto.Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	ctx := c.Request.Context()
	userID, role, err := a.users.Authenticate(ctx, in.Email, in.Password)
	if errors.Is(err, errInvalidCredentials) {
		a.logger.WarnContext(ctx, "ログインに失敗", "email", in.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	if err != nil {
		a.logger.ErrorContext(ctx, "ログイン処理に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	token, expiresAt, err := a.issue(userID, role)
	if err != nil {
		a.logger.ErrorContext(ctx, "トークンの発行に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		UserID:    userID,
		Role:      role,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// handleValidate はBearerトークンを検証し、持ち主を返す。
func (a *AuthService) handleValidate(c *gin.Context) {
	claims, err := a.verify(c.Request.Context(), middleware.BearerToken(c.GetHeader("Authorization")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, validateResponse{Valid: true, UserID: claims.Subject, Role: claims.Role})
}

// handleLogout はトークンを失効させる。トークンはヘッダーかボディで受け取る。
func (a *AuthService) handleLogout(c *gin.Context) {
	token := middleware.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		var body dto.TokenBody
		if err := c.ShouldBindJSON(&body); err == nil {
			token = strings.TrimSpace(body.Token)
		}
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "token is required"})
		return
	}

	ctx := c.Request.Context()
	claims, err := a.verify(ctx, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	if err := a.revoke(ctx, claims); err != nil {
		a.logger.ErrorContext(ctx, "トークンの失効に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "logout failed"})
		return
	}
	a.logger.InfoContext(ctx, "ログアウト", "user_id", claims.Subject)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// issue はユーザーのトークンを発行する。
func (a *AuthService) issue(userID, role string) (string, time.Time, error) {
	now := a.store.now()
	expiresAt := now.Add(a.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "censudex-sandbox",
		},
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, expiresAt, nil
}

// verify はトークンの署名・有効期限・失効状態を検証する。
func (a *AuthService) verify(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("missing token")
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.store.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}

	var revoked bool
	if err := a.store.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = ?)", claims.ID,
	).Scan(&revoked); err != nil {
		return nil, fmt.Errorf("revocation check failed: %w", err)
	}
	if revoked {
		return nil, errors.New("token has been revoked")
	}
	return claims, nil
}

func (a *AuthService) revoke(ctx context.Context, claims *Claims) error {
	_, err := a.store.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO revoked_tokens (jti, expires_at, revoked_at) VALUES (?, ?, ?)",
		claims.ID, claims.ExpiresAt.UTC().Format(time.RFC3339), a.store.timestamp(),
	)
	return err
}
