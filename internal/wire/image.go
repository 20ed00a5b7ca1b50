package wire

import (
	"context"

	"google.golang.org/grpc"
)

// 画像サービスのRPCメソッド名。
const (
	ImageServiceName         = "image.ImageService"
	ImageServiceUploadMethod = "/image.ImageService/Upload"
)

// UploadImage は画像アップロードリクエスト。Image は生のバイト列。
type UploadImage struct {
	Image []byte `json:"image"`
}

// ImageResponse はアップロードされた画像への参照。
type ImageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ImageServiceClient は画像サービスのgRPCクライアント。
type ImageServiceClient interface {
	Upload(ctx context.Context, in *UploadImage, opts ...grpc.CallOption) (*ImageResponse, error)
}

type imageServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewImageServiceClient は画像サービスのクライアントを生成する。
func NewImageServiceClient(cc grpc.ClientConnInterface) ImageServiceClient {
	return &imageServiceClient{cc: cc}
}

func (c *imageServiceClient) Upload(ctx context.Context, in *UploadImage, opts ...grpc.CallOption) (*ImageResponse, error) {
	out := new(ImageResponse)
	if err := invoke(ctx, c.cc, ImageServiceUploadMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ImageServiceServer は画像サービスのサーバー実装が満たすインターフェース。
type ImageServiceServer interface {
	Upload(context.Context, *UploadImage) (*ImageResponse, error)
}

// RegisterImageServiceServer は画像サービスをgRPCサーバーに登録する。
func RegisterImageServiceServer(s grpc.ServiceRegistrar, srv ImageServiceServer) {
	s.RegisterService(&imageServiceDesc, srv)
}

var imageServiceDesc = grpc.ServiceDesc{
	ServiceName: ImageServiceName,
	HandlerType: (*ImageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Upload",
			Handler: unaryHandler(ImageServiceUploadMethod, func(srv any, ctx context.Context, in *UploadImage) (*ImageResponse, error) {
				return srv.(ImageServiceServer).Upload(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "image.proto",
}
