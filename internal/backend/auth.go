package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/httpclient"
	"github.com/nao1215/censudex/pkg/middleware"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// 認証サービスのエンドポイント。
const (
	authLoginPath    = "/api/login/login"
	authValidatePath = "/api/login"
	authLogoutPath   = "/api/login/logout"
)

// Reply は認証サービスのレスポンス。ゲートウェイはこれをそのまま返す。
type Reply struct {
	// StatusCode は認証サービスが返したHTTPステータスコード。
	StatusCode int
	// ContentType は認証サービスが返したContent-Type。
	ContentType string
	// Body は認証サービスが返したボディ。
	Body []byte
}

// OK はステータスコードが2xxかどうかを返す。
func (r Reply) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// AuthClient は認証サービスをHTTPで呼び出す Auth の実装。
type AuthClient struct {
	http *httpclient.Client
}

var _ Auth = (*AuthClient)(nil)

// NewAuthClient は新しい AuthClient を生成する。
func NewAuthClient(client *httpclient.Client) *AuthClient {
	return &AuthClient{http: client}
}

// Login は資格情報を認証サービスに転送する。
func (a *AuthClient) Login(ctx context.Context, in dto.Credentials) (Reply, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return Reply{}, rpcstatus.Newf(codes.Internal, "encode credentials: %v", err)
	}
	return a.do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   authLoginPath,
		Body:   body,
	})
}

// Validate はトークンの検証を認証サービスに依頼する。
func (a *AuthClient) Validate(ctx context.Context, token string) (Reply, error) {
	return a.do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   authValidatePath,
		Token:  token,
	})
}

// Logout はトークンの失効を認証サービスに依頼する。
func (a *AuthClient) Logout(ctx context.Context, token string) (Reply, error) {
	body, err := json.Marshal(dto.TokenBody{Token: token})
	if err != nil {
		return Reply{}, rpcstatus.Newf(codes.Internal, "encode token: %v", err)
	}
	return a.do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   authLogoutPath,
		Token:  token,
		Body:   body,
	})
}

// introspection は検証成功時に認証サービスが返すボディ。
type introspection struct {
	UserID string `json:"userId"`
	Sub    string `json:"sub"`
	Role   string `json:"role"`
}

// Introspect はトークンを検証し、その持ち主を返す。
// 認証サービスが2xx以外を返した場合や通信に失敗した場合は Unauthenticated とする。
// ロールがボディに含まれない場合は、認証サービスが検証済みのJWTのクレームから読む。
func (a *AuthClient) Introspect(ctx context.Context, token string) (middleware.Principal, error) {
	reply, err := a.Validate(ctx, token)
	if err != nil {
		return middleware.Principal{}, rpcstatus.New(codes.Unauthenticated, err.Error())
	}
	if !reply.OK() {
		return middleware.Principal{}, rpcstatus.Newf(codes.Unauthenticated, "auth service rejected token with status %d", reply.StatusCode)
	}

	var body introspection
	if len(reply.Body) > 0 {
		if err := json.Unmarshal(reply.Body, &body); err != nil {
			slog.DebugContext(ctx, "検証レスポンスがJSONではない", "error", err)
		}
	}

	principal := middleware.Principal{Subject: body.UserID, Role: body.Role}
	if principal.Subject == "" {
		principal.Subject = body.Sub
	}
	if principal.Subject == "" || principal.Role == "" {
		claims := unverifiedClaims(token)
		if principal.Subject == "" {
			principal.Subject = claimString(claims, "sub")
		}
		if principal.Role == "" {
			principal.Role = claimString(claims, "role")
		}
	}
	return principal, nil
}

func (a *AuthClient) do(ctx context.Context, req httpclient.Request) (Reply, error) {
	resp, err := a.http.Do(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "認証サービスの呼び出しに失敗",
			"path", req.Path,
			"error", err,
		)
		return Reply{}, rpcstatus.New(codes.Unavailable, fmt.Sprintf("auth service unavailable: %v", err))
	}
	return Reply{
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Body:        resp.Body,
	}, nil
}

// unverifiedClaims は署名を検証せずにJWTのクレームを取り出す。
// 認証サービスが有効と判断した後にのみ呼び出す。
func unverifiedClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

func claimString(claims jwt.MapClaims, key string) string {
	if claims == nil {
		return ""
	}
	v, _ := claims[key].(string)
	return v
}
