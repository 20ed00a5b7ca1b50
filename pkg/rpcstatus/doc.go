// Package rpcstatus はバックエンドRPCの失敗をHTTPレスポンスに変換する。
//
// ゲートウェイ内で発生するすべての失敗は Failure（gRPCコード + メッセージ）として表現され、
// Translate によって決定的にHTTPステータスとエラーエンベロープに変換される。
// ビジネスロジックは持たず、コード表の参照とメッセージの受け渡しのみを行う。
package rpcstatus
