package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nao1215/censudex/pkg/httpclient"
)

// RequestID はリクエストIDを付与するGinミドルウェアを返す。
// 受信したX-Request-IDヘッダーがあればそれを使い、なければUUIDを生成する。
// IDはレスポンスヘッダーとリクエストコンテキストに設定され、認証サービスへの呼び出しにも伝播する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(httpclient.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(httpclient.HeaderRequestID, id)
		c.Request = c.Request.WithContext(httpclient.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
