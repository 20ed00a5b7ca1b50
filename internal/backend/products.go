package backend

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/internal/wire"
)

// ProductClient は商品サービスをgRPCで呼び出す Products の実装。
type ProductClient struct {
	rpc wire.ProductServiceClient
}

var _ Products = (*ProductClient)(nil)

// NewProductClient は新しい ProductClient を生成する。
func NewProductClient(cc grpc.ClientConnInterface) *ProductClient {
	return &ProductClient{rpc: wire.NewProductServiceClient(cc)}
}

// Store は商品を登録する。image はアップロード済みの画像への参照。
func (c *ProductClient) Store(ctx context.Context, in dto.CreateProduct, image dto.ImageRef) (dto.Product, error) {
	resp, err := c.rpc.Store(ctx, &wire.CreationProduct{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		ImageID:     image.ID,
		URL:         image.URL,
		Price:       in.Price,
	})
	if err != nil {
		return dto.Product{}, fail(err)
	}
	return toProduct(resp), nil
}

// Get はID指定で商品を取得する。
func (c *ProductClient) Get(ctx context.Context, id string) (dto.Product, error) {
	resp, err := c.rpc.Get(ctx, &wire.ProductRequest{ID: id})
	if err != nil {
		return dto.Product{}, fail(err)
	}
	return toProduct(resp), nil
}

// Edit は商品を更新する。
// image が nil の場合は画像のフィールドを送らず、バックエンドが現在の値を保持する。
func (c *ProductClient) Edit(ctx context.Context, id string, in dto.EditProduct, image *dto.ImageRef) (dto.Product, error) {
	req := &wire.EditProduct{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
	}
	if image != nil {
		req.ImageID = image.ID
		req.URL = image.URL
	}

	resp, err := c.rpc.Edit(ctx, req)
	if err != nil {
		return dto.Product{}, fail(err)
	}
	return toProduct(resp), nil
}

// Delete は商品を削除（無効化）する。
func (c *ProductClient) Delete(ctx context.Context, id string) (dto.Product, error) {
	resp, err := c.rpc.Delete(ctx, &wire.ProductRequest{ID: id})
	if err != nil {
		return dto.Product{}, fail(err)
	}
	return toProduct(resp), nil
}

// All は商品をすべて取得する。
func (c *ProductClient) All(ctx context.Context) ([]dto.Product, error) {
	resp, err := c.rpc.All(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fail(err)
	}
	products := make([]dto.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		if p == nil {
			continue
		}
		products = append(products, toProduct(p))
	}
	return products, nil
}

func toProduct(p *wire.Product) dto.Product {
	return dto.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Date:        p.Date,
		Price:       p.Price,
		URL:         p.URL,
	}
}
