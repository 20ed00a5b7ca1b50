package gateway

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/internal/catalog"
	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/pkg/rpcstatus"
)

// 商品APIのエラーメッセージ。
const (
	msgNameTaken       = "name already taken"
	msgUUIDBadFormat   = "uuid bad format"
	msgProductNotExist = "product does not exist"
)

// handleCreateProduct は画像をアップロードして商品を登録するハンドラを返す。
func (s *Server) handleCreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateProduct
		if err := c.ShouldBind(&req); err != nil {
			writeInvalid(c, err.Error())
			return
		}
		image, err := formImage(c)
		if err != nil {
			writeInvalid(c, err.Error())
			return
		}
		if image == nil {
			writeInvalid(c, "image is required")
			return
		}

		product, err := s.catalog.Create(c.Request.Context(), req, image)
		if err != nil {
			writeProductError(c, err, false)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// handleEditProduct は商品を更新するハンドラを返す。画像は任意。
func (s *Server) handleEditProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		var req dto.EditProduct
		if err := c.ShouldBind(&req); err != nil {
			writeInvalid(c, err.Error())
			return
		}
		image, err := formImage(c)
		if err != nil {
			writeInvalid(c, err.Error())
			return
		}

		product, err := s.catalog.Edit(c.Request.Context(), id, req, image)
		if err != nil {
			writeProductError(c, err, s.opts.LegacyEditNotFound)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// handleGetProduct はID指定で商品を返すハンドラを返す。
func (s *Server) handleGetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		product, err := s.backends.Products.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// handleDeleteProduct は商品を削除するハンドラを返す。
func (s *Server) handleDeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		product, err := s.backends.Products.Delete(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// handleListProducts は商品一覧を返すハンドラを返す。
func (s *Server) handleListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := s.backends.Products.All(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ProductList{Products: products})
	}
}

// productID はパスのUUIDを検証して返す。
// 形式が不正な場合はバックエンドを呼ばずに400を返し、false を返す。
func productID(c *gin.Context) (string, bool) {
	id := c.Param("uuid")
	if _, err := uuid.Parse(id); err != nil {
		writeInvalid(c, msgUUIDBadFormat)
		return "", false
	}
	return id, true
}

// formImage はマルチパートフォームの image ファイルを読み込む。
// ファイルが送られていない場合は nil を返す。
func formImage(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// writeProductError はオーケストレーターのエラーを返す。
// 商品の手順が InvalidArgument で失敗した場合は名前の重複として409を返す。
// legacyNotFound が true の場合、それ以外の商品の手順の失敗はすべて404にする。
func writeProductError(c *gin.Context, err error, legacyNotFound bool) {
	f := rpcstatus.FromError(err)
	if step, _ := catalog.FailedStep(err); step != catalog.StepProduct {
		writeError(c, f)
		return
	}

	switch {
	case f.Code == codes.InvalidArgument:
		c.AbortWithStatusJSON(http.StatusConflict, rpcstatus.Envelope{
			Error: msgNameTaken,
			Code:  codes.InvalidArgument.String(),
		})
	case legacyNotFound:
		writeError(c, rpcstatus.New(codes.NotFound, msgProductNotExist))
	default:
		writeError(c, f)
	}
}
