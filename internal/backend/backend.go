package backend

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/middleware"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// Identity はクライアント（ユーザー）サービスの能力。
type Identity interface {
	CreateUser(ctx context.Context, in dto.CreateClient) (dto.ClientResult, error)
	GetUsers(ctx context.Context, filter dto.ClientFilter) ([]dto.Client, error)
	GetUserByID(ctx context.Context, id string) (dto.Client, error)
	UpdateUser(ctx context.Context, id string, in dto.UpdateClient) (dto.ClientResult, error)
	DeleteUser(ctx context.Context, id string) (dto.OperationResult, error)
}

// Orders は注文サービスの能力。
type Orders interface {
	CreateOrder(ctx context.Context, in dto.CreateOrder) (dto.Order, error)
	GetAllOrders(ctx context.Context) ([]dto.Order, error)
	GetOrderByID(ctx context.Context, id string) (dto.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, in dto.UpdateOrderStatus) (dto.OperationResult, error)
	CancelOrder(ctx context.Context, id string) (dto.OperationResult, error)
}

// Products は商品サービスの能力。
// image が nil の Edit は画像を変更しない。
type Products interface {
	Store(ctx context.Context, in dto.CreateProduct, image dto.ImageRef) (dto.Product, error)
	Get(ctx context.Context, id string) (dto.Product, error)
	Edit(ctx context.Context, id string, in dto.EditProduct, image *dto.ImageRef) (dto.Product, error)
	Delete(ctx context.Context, id string) (dto.Product, error)
	All(ctx context.Context) ([]dto.Product, error)
}

// Images は画像サービスの能力。
type Images interface {
	Upload(ctx context.Context, data []byte) (dto.ImageRef, error)
}

// Auth は認証サービスの能力。
// Login, Validate, Logout は認証サービスのレスポンスをそのまま返す。
// Introspect はミドルウェアがトークンの有効性を判定するために使う。
type Auth interface {
	middleware.Introspector
	Login(ctx context.Context, in dto.Credentials) (Reply, error)
	Validate(ctx context.Context, token string) (Reply, error)
	Logout(ctx context.Context, token string) (Reply, error)
}

// WithBearer は下流のgRPC呼び出しにBearerトークンを付与したコンテキストを返す。
// トークンが空の場合は ctx をそのまま返す。
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

// fail はgRPC呼び出しのエラーを Failure に変換する。
func fail(err error) error {
	return rpcstatus.FromError(err)
}

// nonBlank は空白のみの文字列を空文字として扱う。
func nonBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
