package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// Interceptor はハンドラの前に評価される処理。
// nil 以外のエラーを返すとリクエストは拒否され、以降のインターセプタとハンドラは実行されない。
// インターセプタ自身は c.Next を呼ばない。
type Interceptor func(c *gin.Context) error

// Chain はインターセプタを宣言順に評価するGinハンドラを返す。
func Chain(interceptors ...Interceptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, intercept := range interceptors {
			if err := intercept(c); err != nil {
				AbortWithError(c, err)
				return
			}
		}
		c.Next()
	}
}

// AbortWithError はエラーをエラーエンベロープに変換してリクエストを中断する。
func AbortWithError(c *gin.Context, err error) {
	status, envelope := rpcstatus.TranslateError(err)
	c.AbortWithStatusJSON(status, envelope)
}
