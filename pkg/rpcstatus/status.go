package rpcstatus

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Failure はバックエンド呼び出しの失敗を表すタグ付きエラー。
// アダプタの呼び出しが失敗した場合は必ずこの型で返す。
type Failure struct {
	// Code はバックエンドが返した失敗コード。
	Code codes.Code
	// Message はバックエンドが返したメッセージ。
	Message string
}

// Error はerrorインターフェースを実装する。
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// New は指定したコードとメッセージで Failure を生成する。
func New(code codes.Code, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// Newf は書式付きメッセージで Failure を生成する。
func Newf(code codes.Code, format string, args ...any) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// FromError は任意のエラーを Failure に変換する。
// gRPCステータスはそのコードとメッセージを引き継ぎ、それ以外は Internal とする。
// err が nil の場合は nil を返す。
func FromError(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	switch {
	case errors.Is(err, context.Canceled):
		return New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return New(codes.DeadlineExceeded, err.Error())
	}

	if s, ok := status.FromError(err); ok {
		return New(s.Code(), s.Message())
	}
	return New(codes.Internal, err.Error())
}

// Envelope はエラー時に返すJSONボディ。
type Envelope struct {
	// Error はバックエンドのメッセージ。
	Error string `json:"error"`
	// Code はバックエンドのコード名（例: "NotFound"）。
	Code string `json:"code"`
}

// HTTPStatus はバックエンドのコードをHTTPステータスに変換する。
// 表にないコードはすべて500とする。
func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.Internal:
		return http.StatusInternalServerError
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Translate は Failure をHTTPステータスとエンベロープに変換する。
func Translate(f *Failure) (int, Envelope) {
	return HTTPStatus(f.Code), Envelope{
		Error: f.Message,
		Code:  f.Code.String(),
	}
}

// TranslateError は任意のエラーを FromError で変換したうえで Translate する。
func TranslateError(err error) (int, Envelope) {
	return Translate(FromError(err))
}
