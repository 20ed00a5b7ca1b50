package backend

import (
	"context"
	"slices"

	"google.golang.org/grpc"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/internal/wire"
)

// ImageClient は画像サービスをgRPCで呼び出す Images の実装。
type ImageClient struct {
	rpc wire.ImageServiceClient
}

var _ Images = (*ImageClient)(nil)

// NewImageClient は新しい ImageClient を生成する。
func NewImageClient(cc grpc.ClientConnInterface) *ImageClient {
	return &ImageClient{rpc: wire.NewImageServiceClient(cc)}
}

// Upload は画像のバイト列をアップロードし、その参照を返す。
func (c *ImageClient) Upload(ctx context.Context, data []byte) (dto.ImageRef, error) {
	resp, err := c.rpc.Upload(ctx, &wire.UploadImage{Image: slices.Clone(data)})
	if err != nil {
		return dto.ImageRef{}, fail(err)
	}
	return dto.ImageRef{ID: resp.ID, URL: resp.URL}, nil
}
