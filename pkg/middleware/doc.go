// Package middleware はゲートウェイのHTTP APIで使用するGinミドルウェアとインターセプタを提供する。
//
// 保護されたルートでは Chain で組み立てたインターセプタを順に評価し、
// いずれかがエラーを返した時点でリクエストを拒否する。拒否時のレスポンスは
// rpcstatus のエラーエンベロープで統一される。
// そのほか、リクエストID、リクエストログ、パニックリカバリ、CORSを含む。
package middleware
