package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/nao1215/censudex/internal/wire"
)

// 注文状態。
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// transitions は各状態から遷移できる状態。
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// OrderService は注文サービス（wire.OrderServiceServer）の実装。
type OrderService struct {
	store  *Store
	logger *slog.Logger
}

var _ wire.OrderServiceServer = (*OrderService)(nil)

// NewOrderService は新しい OrderService を生成する。
func NewOrderService(store *Store, logger *slog.Logger) *OrderService {
	return &OrderService{store: store, logger: logger}
}

// CreateOrder は注文を pending 状態で作成する。合計金額は明細から計算する。
func (s *OrderService) CreateOrder(ctx context.Context, in *wire.CreateOrderRequest) (*wire.Order, error) {
	if in.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customerId is required")
	}
	if len(in.Items) == 0 {
		return nil, status.Error(codes.InvalidArgument, "order must contain at least one item")
	}

	order := &wire.Order{
		ID:            uuid.NewString(),
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Items:         make([]*wire.OrderItem, 0, len(in.Items)),
		Status:        StatusPending,
		CreatedAt:     s.store.timestamp(),
	}
	for i, item := range in.Items {
		if item == nil || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, status.Errorf(codes.InvalidArgument, "item %d: quantity must be positive and unit price non-negative", i)
		}
		order.Items = append(order.Items, item)
		order.TotalAmount += float64(item.Quantity) * item.UnitPrice
	}

	err := s.store.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, customer_id, customer_name, customer_email, total_amount, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID, order.CustomerID, order.CustomerName, order.CustomerEmail,
			order.TotalAmount, order.Status, order.CreatedAt,
		); err != nil {
			return err
		}
		for i, item := range order.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, position, product_id, product_name, quantity, unit_price)
				VALUES (?, ?, ?, ?, ?, ?)`,
				order.ID, i, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "create order: %v", err)
	}

	s.logger.InfoContext(ctx, "注文を作成", "order_id", order.ID, "customer_id", order.CustomerID)
	return order, nil
}

// GetAllOrders はすべての注文を作成日時順に返す。
func (s *OrderService) GetAllOrders(ctx context.Context, _ *emptypb.Empty) (*wire.OrderList, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, customer_id, customer_name, customer_email, total_amount, status, tracking_number, created_at
		FROM orders ORDER BY created_at, rowid`)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "query orders: %v", err)
	}

	orders := []*wire.Order{}
	byID := make(map[string]*wire.Order)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			_ = rows.Close()
			return nil, status.Errorf(codes.Internal, "scan order: %v", err)
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, status.Errorf(codes.Internal, "query orders: %v", err)
	}
	_ = rows.Close()

	items, err := s.store.db.QueryContext(ctx, `
		SELECT order_id, product_id, product_name, quantity, unit_price
		FROM order_items ORDER BY order_id, position`)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "query order items: %v", err)
	}
	defer func() { _ = items.Close() }()
	for items.Next() {
		var (
			orderID string
			item    wire.OrderItem
		)
		if err := items.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, status.Errorf(codes.Internal, "scan order item: %v", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, &item)
		}
	}
	if err := items.Err(); err != nil {
		return nil, status.Errorf(codes.Internal, "query order items: %v", err)
	}
	return &wire.OrderList{Orders: orders}, nil
}

// GetOrderByID はID指定で注文を返す。
func (s *OrderService) GetOrderByID(ctx context.Context, in *wire.OrderByIDRequest) (*wire.Order, error) {
	return s.find(ctx, in.ID)
}

func (s *OrderService) find(ctx context.Context, id string) (*wire.Order, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, customer_id, customer_name, customer_email, total_amount, status, tracking_number, created_at
		FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.Errorf(codes.NotFound, "order with id '%s' does not exist", id)
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "query order items: %v", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var item wire.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, status.Errorf(codes.Internal, "scan order item: %v", err)
		}
		o.Items = append(o.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, status.Errorf(codes.Internal, "query order items: %v", err)
	}
	return o, nil
}

// UpdateOrderStatus は注文状態を進める。
// 未知の状態、許可されない遷移、追跡番号のない発送は success=false で返す。
func (s *OrderService) UpdateOrderStatus(ctx context.Context, in *wire.UpdateStatusRequest) (*wire.OperationResult, error) {
	order, err := s.find(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	next := strings.ToLower(strings.TrimSpace(in.Status))
	if !knownStatus(next) {
		return &wire.OperationResult{Success: false, Message: fmt.Sprintf("unknown status '%s'", in.Status)}, nil
	}
	if !slices.Contains(transitions[order.Status], next) {
		return &wire.OperationResult{
			Success: false,
			Message: fmt.Sprintf("cannot change status from '%s' to '%s'", order.Status, next),
		}, nil
	}
	tracking := order.TrackingNumber
	if next == StatusShipped {
		if in.TrackingNumber == "" {
			return &wire.OperationResult{Success: false, Message: "tracking number is required to ship an order"}, nil
		}
		tracking = in.TrackingNumber
	}

	if _, err := s.store.db.ExecContext(ctx,
		"UPDATE orders SET status = ?, tracking_number = ? WHERE id = ?", next, tracking, order.ID,
	); err != nil {
		return nil, status.Errorf(codes.Internal, "update order: %v", err)
	}
	s.logger.InfoContext(ctx, "注文状態を更新", "order_id", order.ID, "from", order.Status, "to", next)
	return &wire.OperationResult{Success: true, Message: fmt.Sprintf("order status updated to '%s'", next)}, nil
}

// CancelOrder は注文を取り消す。発送後の注文は success=false で返す。
func (s *OrderService) CancelOrder(ctx context.Context, in *wire.OrderByIDRequest) (*wire.OperationResult, error) {
	order, err := s.find(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(transitions[order.Status], StatusCancelled) {
		return &wire.OperationResult{
			Success: false,
			Message: fmt.Sprintf("order in status '%s' cannot be cancelled", order.Status),
		}, nil
	}
	if _, err := s.store.db.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ?", StatusCancelled, order.ID,
	); err != nil {
		return nil, status.Errorf(codes.Internal, "cancel order: %v", err)
	}
	s.logger.InfoContext(ctx, "注文を取り消し", "order_id", order.ID)
	return &wire.OperationResult{Success: true, Message: "order cancelled"}, nil
}

func knownStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func scanOrder(row rowScanner) (*wire.Order, error) {
	o := &wire.Order{Items: []*wire.OrderItem{}}
	if err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
		&o.TotalAmount, &o.Status, &o.TrackingNumber, &o.CreatedAt); err != nil {
		return nil, err
	}
	return o, nil
}
