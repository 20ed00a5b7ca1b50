// Package httpclient はHTTPで提供されるバックエンドサービスを呼び出すクライアントを提供する。
//
// 認証サービスへのログイン・トークン検証・ログアウトの転送に使用する。
// レスポンスはステータスコードとボディをそのまま保持し、パススルーできる形で返す。
package httpclient
