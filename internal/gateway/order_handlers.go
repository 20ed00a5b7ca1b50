package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/internal/backend"
	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/middleware"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// handleCreateOrder は注文を作成するハンドラを返す。
// 作成した注文を201とLocationヘッダーで返す。
func (s *Server) handleCreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateOrder
		if err := c.ShouldBindJSON(&req); err != nil {
			writeInvalid(c, err.Error())
			return
		}

		ctx := backend.WithBearer(c.Request.Context(), middleware.Token(c))
		order, err := s.backends.Orders.CreateOrder(ctx, req)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Header("Location", "/orders/"+order.ID)
		c.JSON(http.StatusCreated, order)
	}
}

// handleListOrders は注文一覧をフィルタして返すハンドラを返す。
// フィルタはバックエンドから全件を取得したうえでゲートウェイ側で適用する。
func (s *Server) handleListOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter dto.OrderFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			writeInvalid(c, err.Error())
			return
		}

		ctx := backend.WithBearer(c.Request.Context(), middleware.Token(c))
		orders, err := s.backends.Orders.GetAllOrders(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OrderList{Orders: FilterOrders(orders, filter)})
	}
}

// handleGetOrder はID指定で注文を返すハンドラを返す。
// バックエンドがIDのない注文を返した場合は存在しないものとして404を返す。
func (s *Server) handleGetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		ctx := backend.WithBearer(c.Request.Context(), middleware.Token(c))
		order, err := s.backends.Orders.GetOrderByID(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		if strings.TrimSpace(order.ID) == "" {
			writeError(c, rpcstatus.Newf(codes.NotFound, "order with id '%s' does not exist", id))
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// handleUpdateOrderStatus は注文の状態を更新するハンドラを返す。
// 状態遷移の妥当性は注文サービスが判断する。
func (s *Server) handleUpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateOrderStatus
		if err := c.ShouldBindJSON(&req); err != nil {
			writeInvalid(c, err.Error())
			return
		}

		ctx := backend.WithBearer(c.Request.Context(), middleware.Token(c))
		result, err := s.backends.Orders.UpdateOrderStatus(ctx, c.Param("id"), req)
		writeOperation(c, result, err)
	}
}

// handleCancelOrder は注文をキャンセルするハンドラを返す。
func (s *Server) handleCancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := backend.WithBearer(c.Request.Context(), middleware.Token(c))
		result, err := s.backends.Orders.CancelOrder(ctx, c.Param("id"))
		writeOperation(c, result, err)
	}
}

// writeOperation は状態変更の結果を返す。
// success=false はバックエンドのメッセージで400とする。
func writeOperation(c *gin.Context, result dto.OperationResult, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	if !result.Success {
		writeInvalid(c, result.Message)
		return
	}
	c.JSON(http.StatusOK, result)
}
