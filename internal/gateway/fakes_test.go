package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"

	"github.com/nao1215/censudex/internal/backend"
	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/middleware"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// テスト用のトークン。
const (
	tokenClient = "client-token"
	tokenAdmin  = "admin-token"
)

// fakeAuth はテスト用の認証アダプタ。
type fakeAuth struct {
	mu    sync.Mutex
	calls int
	down  bool
}

var _ backend.Auth = (*fakeAuth)(nil)

func (f *fakeAuth) Introspect(_ context.Context, token string) (middleware.Principal, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.down {
		return middleware.Principal{}, rpcstatus.New(codes.Unauthenticated, "auth service unavailable")
	}
	switch token {
	case tokenClient:
		return middleware.Principal{Subject: "c1", Role: "client"}, nil
	case tokenAdmin:
		return middleware.Principal{Subject: "a1", Role: "admin"}, nil
	}
	return middleware.Principal{}, rpcstatus.New(codes.Unauthenticated, "invalid token")
}

func (f *fakeAuth) Login(_ context.Context, in dto.Credentials) (backend.Reply, error) {
	if f.down {
		return backend.Reply{}, rpcstatus.New(codes.Unavailable, "auth service unavailable")
	}
	if in.Password != "secret" {
		return backend.Reply{StatusCode: 401, ContentType: "text/plain", Body: []byte("invalid credentials")}, nil
	}
	return backend.Reply{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"token":"` + tokenClient + `"}`)}, nil
}

func (f *fakeAuth) Validate(_ context.Context, token string) (backend.Reply, error) {
	if token != tokenClient && token != tokenAdmin {
		return backend.Reply{StatusCode: 401, Body: []byte("invalid token")}, nil
	}
	return backend.Reply{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"valid":true}`)}, nil
}

func (f *fakeAuth) Logout(_ context.Context, token string) (backend.Reply, error) {
	return backend.Reply{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"message":"logged out ` + token + `"}`)}, nil
}

func (f *fakeAuth) introspections() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeIdentity はテスト用のクライアントアダプタ。
type fakeIdentity struct {
	mu         sync.Mutex
	lastFilter dto.ClientFilter
}

var _ backend.Identity = (*fakeIdentity)(nil)

func (f *fakeIdentity) CreateUser(_ context.Context, in dto.CreateClient) (dto.ClientResult, error) {
	if in.Email == "taken@example.com" {
		return dto.ClientResult{}, rpcstatus.New(codes.AlreadyExists, "email already registered")
	}
	return dto.ClientResult{Message: "created", Client: &dto.Client{ID: "u-1", Name: in.Name, Email: in.Email}}, nil
}

func (f *fakeIdentity) GetUsers(_ context.Context, filter dto.ClientFilter) ([]dto.Client, error) {
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	return []dto.Client{{ID: "u-1", Name: "Ana"}}, nil
}

func (f *fakeIdentity) GetUserByID(_ context.Context, id string) (dto.Client, error) {
	if id != "u-1" {
		return dto.Client{}, rpcstatus.New(codes.NotFound, "user not found")
	}
	return dto.Client{ID: "u-1", Name: "Ana"}, nil
}

func (f *fakeIdentity) UpdateUser(_ context.Context, id string, in dto.UpdateClient) (dto.ClientResult, error) {
	return dto.ClientResult{Message: "updated", Client: &dto.Client{ID: id, Name: in.Name}}, nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, id string) (dto.OperationResult, error) {
	return dto.OperationResult{Success: true, Message: "deleted " + id}, nil
}

// fakeOrders はテスト用の注文アダプタ。
type fakeOrders struct {
	mu       sync.Mutex
	orders   map[string]dto.Order
	lastAuth []string
	emptyID  bool
}

var _ backend.Orders = (*fakeOrders)(nil)

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[string]dto.Order{}}
}

func (f *fakeOrders) record(ctx context.Context) {
	md, _ := metadata.FromOutgoingContext(ctx)
	f.lastAuth = md.Get("authorization")
}

func (f *fakeOrders) CreateOrder(ctx context.Context, in dto.CreateOrder) (dto.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx)

	order := dto.Order{
		ID:            uuid.NewString(),
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Status:        "pending",
		CreatedAt:     "2024-05-01T10:00:00Z",
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, dto.OrderItem(item))
		order.TotalAmount += float64(item.Quantity) * item.UnitPrice
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrders) GetAllOrders(ctx context.Context) ([]dto.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx)
	return []dto.Order{
		{ID: "o-1", CustomerID: "c1", CreatedAt: "2024-05-01T10:00:00Z"},
		{ID: "o-2", CustomerID: "c2", CreatedAt: "2024-05-03T10:00:00Z"},
		{ID: "o-3", CustomerID: "c1", CreatedAt: "2024-05-05T10:00:00Z"},
	}, nil
}

func (f *fakeOrders) GetOrderByID(ctx context.Context, id string) (dto.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx)
	if f.emptyID {
		return dto.Order{}, nil
	}
	order, ok := f.orders[id]
	if !ok {
		return dto.Order{}, rpcstatus.Newf(codes.NotFound, "order %s not found", id)
	}
	return order, nil
}

func (f *fakeOrders) UpdateOrderStatus(_ context.Context, id string, in dto.UpdateOrderStatus) (dto.OperationResult, error) {
	if in.Status == "delivered" {
		return dto.OperationResult{Success: false, Message: "cannot deliver a pending order"}, nil
	}
	return dto.OperationResult{Success: true, Message: fmt.Sprintf("order %s is %s", id, in.Status)}, nil
}

func (f *fakeOrders) CancelOrder(_ context.Context, id string) (dto.OperationResult, error) {
	if id == "down" {
		return dto.OperationResult{}, rpcstatus.New(codes.Unavailable, "orders service unavailable")
	}
	return dto.OperationResult{Success: true, Message: "cancelled"}, nil
}

// fakeImages はテスト用の画像アダプタ。
type fakeImages struct {
	mu      sync.Mutex
	uploads int
	err     error
}

var _ backend.Images = (*fakeImages)(nil)

func (f *fakeImages) Upload(_ context.Context, data []byte) (dto.ImageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return dto.ImageRef{}, f.err
	}
	f.uploads++
	id := fmt.Sprintf("img-%d", f.uploads)
	return dto.ImageRef{ID: id, URL: "http://images.local/" + id}, nil
}

func (f *fakeImages) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

// fakeProducts はテスト用の商品アダプタ。名前の重複を InvalidArgument で拒否する。
type fakeProducts struct {
	mu       sync.Mutex
	products map[string]dto.Product
	editErr  error
}

var _ backend.Products = (*fakeProducts)(nil)

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: map[string]dto.Product{}}
}

func (f *fakeProducts) Store(_ context.Context, in dto.CreateProduct, image dto.ImageRef) (dto.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Name == in.Name {
			return dto.Product{}, rpcstatus.New(codes.InvalidArgument, "duplicate name")
		}
	}
	p := dto.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Date:        "2024-05-01",
		Price:       in.Price,
		URL:         image.URL,
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProducts) Get(_ context.Context, id string) (dto.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return dto.Product{}, rpcstatus.New(codes.NotFound, "product not found")
	}
	return p, nil
}

func (f *fakeProducts) Edit(_ context.Context, id string, in dto.EditProduct, image *dto.ImageRef) (dto.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return dto.Product{}, f.editErr
	}
	p, ok := f.products[id]
	if !ok {
		return dto.Product{}, rpcstatus.New(codes.NotFound, "product not found")
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if image != nil {
		p.URL = image.URL
	}
	f.products[id] = p
	return p, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) (dto.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return dto.Product{}, rpcstatus.New(codes.NotFound, "product not found")
	}
	delete(f.products, id)
	return p, nil
}

func (f *fakeProducts) All(context.Context) ([]dto.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dto.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}
