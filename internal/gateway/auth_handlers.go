package gateway

import (
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/middleware"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// handleLogin はログインを認証サービスに転送するハンドラを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.Credentials
		if err := c.ShouldBindJSON(&req); err != nil {
			writeInvalid(c, err.Error())
			return
		}

		reply, err := s.backends.Auth.Login(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeReply(c, reply)
	}
}

// handleValidateToken はトークンの検証を認証サービスに転送するハンドラを返す。
// トークンはAuthorizationヘッダー、なければボディの token から取る。
func (s *Server) handleValidateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			writeError(c, rpcstatus.New(codes.Unauthenticated, "missing bearer token"))
			return
		}

		reply, err := s.backends.Auth.Validate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		writeReply(c, reply)
	}
}

// handleLogout はログアウトを認証サービスに転送するハンドラを返す。
// トークンがヘッダーにもボディにもない場合は400を返す。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			writeInvalid(c, "authorization header missing: send 'Authorization: Bearer <token>' or include { token } in body")
			return
		}

		reply, err := s.backends.Auth.Logout(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		writeReply(c, reply)
	}
}

// requestToken はAuthorizationヘッダー、なければJSONボディの token からトークンを取り出す。
func requestToken(c *gin.Context) string {
	if token := middleware.BearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	var body dto.TokenBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return ""
	}
	return body.Token
}
