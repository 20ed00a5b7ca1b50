package dto

import "time"

// CreateOrderItem は注文明細の入力。
type CreateOrderItem struct {
	ProductID   string  `json:"productId" binding:"required"`
	ProductName string  `json:"productName" binding:"required"`
	Quantity    int32   `json:"quantity" binding:"gt=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
}

// CreateOrder は注文作成の入力。
type CreateOrder struct {
	CustomerID    string            `json:"customerId" binding:"required"`
	CustomerName  string            `json:"customerName" binding:"required"`
	CustomerEmail string            `json:"customerEmail" binding:"required,email"`
	Items         []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
}

// OrderItem はRESTで返す注文明細。
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int32   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Order はRESTで返す注文。
type Order struct {
	ID             string      `json:"id"`
	CustomerID     string      `json:"customerId"`
	CustomerName   string      `json:"customerName"`
	CustomerEmail  string      `json:"customerEmail"`
	Items          []OrderItem `json:"items"`
	TotalAmount    float64     `json:"totalAmount"`
	Status         string      `json:"status"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	CreatedAt      string      `json:"createdAt"`
}

// CreatedTime は CreatedAt を時刻として解釈する。
func (o Order) CreatedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// OrderList は注文一覧。
type OrderList struct {
	Orders []Order `json:"orders"`
}

// OrderFilter は注文一覧のクエリフィルタ。
// From と To は日付として解釈できない場合は無視される。
type OrderFilter struct {
	CustomerID string `form:"customerId"`
	From       string `form:"from"`
	To         string `form:"to"`
}

// UpdateOrderStatus は注文状態更新の入力。
type UpdateOrderStatus struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
}
