// Package wire はバックエンドRPCサービスのメッセージ形式とgRPCのクライアント/サーバー定義を提供する。
//
// 各バックエンド（ユーザー、注文、商品、画像）のメッセージは grpcjson コーデックで
// JSONとしてやり取りされる。クライアントは grpc.ClientConnInterface を、
// サーバーは grpc.ServiceRegistrar を受け取るため、実サービスとテスト用サービスの双方で使える。
package wire

import (
	"context"

	"google.golang.org/grpc"

	"github.com/nao1215/censudex/pkg/grpcjson"
)

// invoke はJSONコーデックを指定して単項RPCを呼び出す。
func invoke(ctx context.Context, cc grpc.ClientConnInterface, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := make([]grpc.CallOption, 0, len(opts)+1)
	callOpts = append(callOpts, grpcjson.CallOption())
	callOpts = append(callOpts, opts...)
	return cc.Invoke(ctx, method, in, out, callOpts...)
}

// unaryHandler はサーバー実装の呼び出しをgRPCのメソッドハンドラに変換する。
func unaryHandler[Req, Resp any](fullMethod string, call func(srv any, ctx context.Context, in *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
