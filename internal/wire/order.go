package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// 注文サービスのRPCメソッド名。
const (
	OrderServiceName                    = "order_service.OrderGrpcService"
	OrderServiceCreateOrderMethod       = "/order_service.OrderGrpcService/CreateOrder"
	OrderServiceGetAllOrdersMethod      = "/order_service.OrderGrpcService/GetAllOrders"
	OrderServiceGetOrderByIDMethod      = "/order_service.OrderGrpcService/GetOrderById"
	OrderServiceUpdateOrderStatusMethod = "/order_service.OrderGrpcService/UpdateOrderStatus"
	OrderServiceCancelOrderMethod       = "/order_service.OrderGrpcService/CancelOrder"
)

// OrderItem は注文明細。
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int32   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CreateOrderRequest は注文作成リクエスト。
type CreateOrderRequest struct {
	CustomerID    string       `json:"customerId"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail"`
	Items         []*OrderItem `json:"items"`
}

// Order は注文サービスが返す注文。
// CreatedAt はRFC 3339形式の日時。
type Order struct {
	ID             string       `json:"id"`
	CustomerID     string       `json:"customerId"`
	CustomerName   string       `json:"customerName"`
	CustomerEmail  string       `json:"customerEmail"`
	Items          []*OrderItem `json:"items"`
	TotalAmount    float64      `json:"totalAmount"`
	Status         string       `json:"status"`
	TrackingNumber string       `json:"trackingNumber,omitempty"`
	CreatedAt      string       `json:"createdAt"`
}

// OrderList は注文一覧。
type OrderList struct {
	Orders []*Order `json:"orders"`
}

// OrderByIDRequest はID指定のリクエスト。
type OrderByIDRequest struct {
	ID string `json:"id"`
}

// UpdateStatusRequest は注文状態の更新リクエスト。
type UpdateStatusRequest struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// OperationResult は状態変更系の結果。
// Success が false の場合、Message に理由が入る。
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OrderServiceClient は注文サービスのgRPCクライアント。
type OrderServiceClient interface {
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*Order, error)
	GetAllOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*OrderList, error)
	GetOrderByID(ctx context.Context, in *OrderByIDRequest, opts ...grpc.CallOption) (*Order, error)
	UpdateOrderStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*OperationResult, error)
	CancelOrder(ctx context.Context, in *OrderByIDRequest, opts ...grpc.CallOption) (*OperationResult, error)
}

type orderServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOrderServiceClient は注文サービスのクライアントを生成する。
func NewOrderServiceClient(cc grpc.ClientConnInterface) OrderServiceClient {
	return &orderServiceClient{cc: cc}
}

func (c *orderServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	out := new(Order)
	if err := invoke(ctx, c.cc, OrderServiceCreateOrderMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) GetAllOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*OrderList, error) {
	out := new(OrderList)
	if err := invoke(ctx, c.cc, OrderServiceGetAllOrdersMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) GetOrderByID(ctx context.Context, in *OrderByIDRequest, opts ...grpc.CallOption) (*Order, error) {
	out := new(Order)
	if err := invoke(ctx, c.cc, OrderServiceGetOrderByIDMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) UpdateOrderStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*OperationResult, error) {
	out := new(OperationResult)
	if err := invoke(ctx, c.cc, OrderServiceUpdateOrderStatusMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) CancelOrder(ctx context.Context, in *OrderByIDRequest, opts ...grpc.CallOption) (*OperationResult, error) {
	out := new(OperationResult)
	if err := invoke(ctx, c.cc, OrderServiceCancelOrderMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderServiceServer は注文サービスのサーバー実装が満たすインターフェース。
type OrderServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*Order, error)
	GetAllOrders(context.Context, *emptypb.Empty) (*OrderList, error)
	GetOrderByID(context.Context, *OrderByIDRequest) (*Order, error)
	UpdateOrderStatus(context.Context, *UpdateStatusRequest) (*OperationResult, error)
	CancelOrder(context.Context, *OrderByIDRequest) (*OperationResult, error)
}

// RegisterOrderServiceServer は注文サービスをgRPCサーバーに登録する。
func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&orderServiceDesc, srv)
}

var orderServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateOrder",
			Handler: unaryHandler(OrderServiceCreateOrderMethod, func(srv any, ctx context.Context, in *CreateOrderRequest) (*Order, error) {
				return srv.(OrderServiceServer).CreateOrder(ctx, in)
			}),
		},
		{
			MethodName: "GetAllOrders",
			Handler: unaryHandler(OrderServiceGetAllOrdersMethod, func(srv any, ctx context.Context, in *emptypb.Empty) (*OrderList, error) {
				return srv.(OrderServiceServer).GetAllOrders(ctx, in)
			}),
		},
		{
			MethodName: "GetOrderById",
			Handler: unaryHandler(OrderServiceGetOrderByIDMethod, func(srv any, ctx context.Context, in *OrderByIDRequest) (*Order, error) {
				return srv.(OrderServiceServer).GetOrderByID(ctx, in)
			}),
		},
		{
			MethodName: "UpdateOrderStatus",
			Handler: unaryHandler(OrderServiceUpdateOrderStatusMethod, func(srv any, ctx context.Context, in *UpdateStatusRequest) (*OperationResult, error) {
				return srv.(OrderServiceServer).UpdateOrderStatus(ctx, in)
			}),
		},
		{
			MethodName: "CancelOrder",
			Handler: unaryHandler(OrderServiceCancelOrderMethod, func(srv any, ctx context.Context, in *OrderByIDRequest) (*OperationResult, error) {
				return srv.(OrderServiceServer).CancelOrder(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "order.proto",
}
