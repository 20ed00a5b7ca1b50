package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// 商品サービスのRPCメソッド名。
const (
	ProductServiceName         = "product.ProductService"
	ProductServiceStoreMethod  = "/product.ProductService/Store"
	ProductServiceGetMethod    = "/product.ProductService/Get"
	ProductServiceEditMethod   = "/product.ProductService/Edit"
	ProductServiceDeleteMethod = "/product.ProductService/Delete"
	ProductServiceAllMethod    = "/product.ProductService/All"
)

// Product は商品サービスが返す商品。
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Price       int32  `json:"price"`
	ImageID     string `json:"imageId"`
	URL         string `json:"url"`
}

// CreationProduct は商品登録リクエスト。
// ImageID と URL は事前にアップロードした画像を参照する。
type CreationProduct struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageID     string `json:"imageId"`
	URL         string `json:"url"`
	Price       int32  `json:"price"`
}

// ProductRequest はID指定のリクエスト。
type ProductRequest struct {
	ID string `json:"id"`
}

// EditProduct は商品更新リクエスト。
// 未設定のフィールドはバックエンドが現在の値を保持する。
type EditProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Price       int32  `json:"price,omitempty"`
	ImageID     string `json:"imageId,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ProductResponseList は商品一覧。
type ProductResponseList struct {
	Products []*Product `json:"products"`
}

// ProductServiceClient は商品サービスのgRPCクライアント。
type ProductServiceClient interface {
	Store(ctx context.Context, in *CreationProduct, opts ...grpc.CallOption) (*Product, error)
	Get(ctx context.Context, in *ProductRequest, opts ...grpc.CallOption) (*Product, error)
	Edit(ctx context.Context, in *EditProduct, opts ...grpc.CallOption) (*Product, error)
	Delete(ctx context.Context, in *ProductRequest, opts ...grpc.CallOption) (*Product, error)
	All(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ProductResponseList, error)
}

type productServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProductServiceClient は商品サービスのクライアントを生成する。
func NewProductServiceClient(cc grpc.ClientConnInterface) ProductServiceClient {
	return &productServiceClient{cc: cc}
}

func (c *productServiceClient) Store(ctx context.Context, in *CreationProduct, opts ...grpc.CallOption) (*Product, error) {
	out := new(Product)
	if err := invoke(ctx, c.cc, ProductServiceStoreMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) Get(ctx context.Context, in *ProductRequest, opts ...grpc.CallOption) (*Product, error) {
	out := new(Product)
	if err := invoke(ctx, c.cc, ProductServiceGetMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) Edit(ctx context.Context, in *EditProduct, opts ...grpc.CallOption) (*Product, error) {
	out := new(Product)
	if err := invoke(ctx, c.cc, ProductServiceEditMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) Delete(ctx context.Context, in *ProductRequest, opts ...grpc.CallOption) (*Product, error) {
	out := new(Product)
	if err := invoke(ctx, c.cc, ProductServiceDeleteMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) All(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ProductResponseList, error) {
	out := new(ProductResponseList)
	if err := invoke(ctx, c.cc, ProductServiceAllMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductServiceServer は商品サービスのサーバー実装が満たすインターフェース。
type ProductServiceServer interface {
	Store(context.Context, *CreationProduct) (*Product, error)
	Get(context.Context, *ProductRequest) (*Product, error)
	Edit(context.Context, *EditProduct) (*Product, error)
	Delete(context.Context, *ProductRequest) (*Product, error)
	All(context.Context, *emptypb.Empty) (*ProductResponseList, error)
}

// RegisterProductServiceServer は商品サービスをgRPCサーバーに登録する。
func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&productServiceDesc, srv)
}

var productServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Store",
			Handler: unaryHandler(ProductServiceStoreMethod, func(srv any, ctx context.Context, in *CreationProduct) (*Product, error) {
				return srv.(ProductServiceServer).Store(ctx, in)
			}),
		},
		{
			MethodName: "Get",
			Handler: unaryHandler(ProductServiceGetMethod, func(srv any, ctx context.Context, in *ProductRequest) (*Product, error) {
				return srv.(ProductServiceServer).Get(ctx, in)
			}),
		},
		{
			MethodName: "Edit",
			Handler: unaryHandler(ProductServiceEditMethod, func(srv any, ctx context.Context, in *EditProduct) (*Product, error) {
				return srv.(ProductServiceServer).Edit(ctx, in)
			}),
		},
		{
			MethodName: "Delete",
			Handler: unaryHandler(ProductServiceDeleteMethod, func(srv any, ctx context.Context, in *ProductRequest) (*Product, error) {
				return srv.(ProductServiceServer).Delete(ctx, in)
			}),
		},
		{
			MethodName: "All",
			Handler: unaryHandler(ProductServiceAllMethod, func(srv any, ctx context.Context, in *emptypb.Empty) (*ProductResponseList, error) {
				return srv.(ProductServiceServer).All(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "product.proto",
}
