package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニック発生時にスタックトレースをログに出力し、Internal のエラーエンベロープで500を返す。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "パニックから回復",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", r,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, rpcstatus.Envelope{
					Error: "internal server error",
					Code:  codes.Internal.String(),
				})
			}
		}()
		c.Next()
	}
}
