package middleware

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// ginコンテキストに格納するキー。
const (
	contextKeyToken     = "bearer_token"
	contextKeyPrincipal = "principal"
)

// Principal は認証サービスが確認したトークンの持ち主。
type Principal struct {
	// Subject はユーザーID。
	Subject string
	// Role はユーザーのロール。
	Role string
}

// Introspector はトークンを認証サービスに問い合わせるインターフェース。
// 認証サービスが有効と判断しなかった場合はエラーを返す。
type Introspector interface {
	Introspect(ctx context.Context, token string) (Principal, error)
}

// BearerToken はAuthorizationヘッダーの値からBearerトークンを取り出す。
// トークンがない場合は空文字を返す。
func BearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// BearerAuth はBearerトークンを取り出して認証サービスで検証するインターセプタを返す。
// トークンがない場合も検証に失敗した場合も Unauthenticated で拒否する。
// 検証結果はリクエストをまたいでキャッシュしない。
func BearerAuth(introspector Introspector) Interceptor {
	return func(c *gin.Context) error {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			return rpcstatus.New(codes.Unauthenticated, "missing bearer token")
		}

		principal, err := introspector.Introspect(c.Request.Context(), token)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "トークンの検証に失敗",
				"path", c.Request.URL.Path,
				"error", err,
			)
			return rpcstatus.New(codes.Unauthenticated, "invalid or expired token")
		}

		c.Set(contextKeyToken, token)
		c.Set(contextKeyPrincipal, principal)
		return nil
	}
}

// RequireRole は認証済みユーザーのロールが指定のいずれかであることを要求するインターセプタを返す。
// BearerAuth の後に置く。
func RequireRole(roles ...string) Interceptor {
	return func(c *gin.Context) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return rpcstatus.New(codes.Unauthenticated, "missing bearer token")
		}
		if !slices.Contains(roles, principal.Role) {
			return rpcstatus.Newf(codes.PermissionDenied, "role %q is not allowed", principal.Role)
		}
		return nil
	}
}

// Token は BearerAuth が検証したトークンを返す。
func Token(c *gin.Context) string {
	return c.GetString(contextKeyToken)
}

// PrincipalFrom は BearerAuth が格納した Principal を返す。
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(contextKeyPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
