package backend

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/internal/wire"
)

// OrderClient は注文サービスをgRPCで呼び出す Orders の実装。
type OrderClient struct {
	rpc wire.OrderServiceClient
}

var _ Orders = (*OrderClient)(nil)

// NewOrderClient は新しい OrderClient を生成する。
func NewOrderClient(cc grpc.ClientConnInterface) *OrderClient {
	return &OrderClient{rpc: wire.NewOrderServiceClient(cc)}
}

// CreateOrder は注文を作成する。
func (c *OrderClient) CreateOrder(ctx context.Context, in dto.CreateOrder) (dto.Order, error) {
	req := &wire.CreateOrderRequest{
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Items:         make([]*wire.OrderItem, 0, len(in.Items)),
	}
	for _, item := range in.Items {
		req.Items = append(req.Items, &wire.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	resp, err := c.rpc.CreateOrder(ctx, req)
	if err != nil {
		return dto.Order{}, fail(err)
	}
	return toOrder(resp), nil
}

// GetAllOrders は注文をすべて取得する。フィルタはゲートウェイ側で行う。
func (c *OrderClient) GetAllOrders(ctx context.Context) ([]dto.Order, error) {
	resp, err := c.rpc.GetAllOrders(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fail(err)
	}
	orders := make([]dto.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		if o == nil {
			continue
		}
		orders = append(orders, toOrder(o))
	}
	return orders, nil
}

// GetOrderByID はID指定で注文を取得する。
func (c *OrderClient) GetOrderByID(ctx context.Context, id string) (dto.Order, error) {
	resp, err := c.rpc.GetOrderByID(ctx, &wire.OrderByIDRequest{ID: id})
	if err != nil {
		return dto.Order{}, fail(err)
	}
	return toOrder(resp), nil
}

// UpdateOrderStatus は注文の状態を更新する。
// バックエンドが拒否した場合はエラーではなく Success=false の結果として返す。
func (c *OrderClient) UpdateOrderStatus(ctx context.Context, id string, in dto.UpdateOrderStatus) (dto.OperationResult, error) {
	resp, err := c.rpc.UpdateOrderStatus(ctx, &wire.UpdateStatusRequest{
		ID:             id,
		Status:         in.Status,
		TrackingNumber: in.TrackingNumber,
	})
	if err != nil {
		return dto.OperationResult{}, fail(err)
	}
	return dto.OperationResult{Success: resp.Success, Message: resp.Message}, nil
}

// CancelOrder は注文をキャンセルする。
func (c *OrderClient) CancelOrder(ctx context.Context, id string) (dto.OperationResult, error) {
	resp, err := c.rpc.CancelOrder(ctx, &wire.OrderByIDRequest{ID: id})
	if err != nil {
		return dto.OperationResult{}, fail(err)
	}
	return dto.OperationResult{Success: resp.Success, Message: resp.Message}, nil
}

func toOrder(o *wire.Order) dto.Order {
	order := dto.Order{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		Items:          make([]dto.OrderItem, 0, len(o.Items)),
		TotalAmount:    o.TotalAmount,
		Status:         o.Status,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
	}
	for _, item := range o.Items {
		if item == nil {
			continue
		}
		order.Items = append(order.Items, dto.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return order
}
