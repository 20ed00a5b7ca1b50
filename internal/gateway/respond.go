package gateway

import (
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/internal/backend"
	"github.com/nao1215/censudex/pkg/middleware"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// writeError はエラーをエラーエンベロープに変換して返す。
func writeError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// writeInvalid は入力の検証エラーを InvalidArgument として返す。
func writeInvalid(c *gin.Context, message string) {
	writeError(c, rpcstatus.New(codes.InvalidArgument, message))
}

// writeReply は認証サービスのレスポンスをそのまま返す。
func writeReply(c *gin.Context, reply backend.Reply) {
	contentType := reply.ContentType
	if contentType == "" {
		if reply.OK() {
			contentType = "application/json"
		} else {
			contentType = "text/plain; charset=utf-8"
		}
	}
	c.Data(reply.StatusCode, contentType, reply.Body)
}
