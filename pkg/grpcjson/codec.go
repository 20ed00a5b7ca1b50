// Package grpcjson はgRPC上でJSONをワイヤ形式として使うためのコーデックを提供する。
//
// パッケージの読み込み時にコンテンツサブタイプ "json" としてgRPCに登録される。
// クライアントは CallOption を付与して呼び出し、サーバー側は
// application/grpc+json のリクエストを自動的にこのコーデックで処理する。
// protobufメッセージ（emptypb など）は protojson で、それ以外の構造体は encoding/json で扱う。
package grpcjson

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name はgRPCに登録するコンテンツサブタイプ名。
const Name = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec はJSONによるgRPCコーデック。
type Codec struct{}

// Marshal はメッセージをJSONにシリアライズする。
func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("メッセージのシリアライズに失敗: %w", err)
	}
	return data, nil
}

// Unmarshal はJSONをメッセージにデシリアライズする。
// 未知のフィールドは無視する。
func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("メッセージのデシリアライズに失敗: %w", err)
	}
	return nil
}

// Name はコーデック名を返す。
func (Codec) Name() string {
	return Name
}

// CallOption はこのコーデックで呼び出すためのgRPCコールオプションを返す。
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}
