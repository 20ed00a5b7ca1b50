// Package gateway はCensudexのAPI Gatewayの内部実装を提供する。
//
// REST/JSONのリクエストを受け付け、バックエンドのRPCサービス（クライアント、注文、商品、画像）と
// HTTPの認証サービスへの呼び出しに変換する。外部からアクセス可能な唯一のサービスであり、
// 保護されたルートでは認証サービスへの問い合わせが成功するまでハンドラを実行しない。
// バックエンドの失敗はすべて rpcstatus のエラーエンベロープに変換して返す。
package gateway
