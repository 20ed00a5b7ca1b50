package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/nao1215/censudex/internal/wire"
)

// msgNameTaken は商品名が重複した場合のメッセージ。
const msgNameTaken = "name already taken"

// ProductService は商品サービス（wire.ProductServiceServer）の実装。
// 削除は論理削除で、削除済みの商品は取得・更新・一覧の対象外になる。
type ProductService struct {
	store  *Store
	logger *slog.Logger
}

var _ wire.ProductServiceServer = (*ProductService)(nil)

// NewProductService は新しい ProductService を生成する。
func NewProductService(store *Store, logger *slog.Logger) *ProductService {
	return &ProductService{store: store, logger: logger}
}

const productColumns = "id, name, category, description, created_at, price, image_id, url"

// Store は商品を登録する。有効な商品と名前が重複する場合は InvalidArgument を返す。
func (s *ProductService) Store(ctx context.Context, in *wire.CreationProduct) (*wire.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}
	if in.Price <= 0 {
		return nil, status.Error(codes.InvalidArgument, "price must be positive")
	}
	if in.ImageID == "" || in.URL == "" {
		return nil, status.Error(codes.InvalidArgument, "image reference is required")
	}

	p := &wire.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Date:        s.store.timestamp(),
		Price:       in.Price,
		ImageID:     in.ImageID,
		URL:         in.URL,
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, description, created_at, price, image_id, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Category, p.Description, p.Date, p.Price, p.ImageID, p.URL,
	)
	if err != nil {
		return nil, productWriteError(err)
	}
	s.logger.InfoContext(ctx, "商品を登録", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// Get はID指定で商品を返す。
func (s *ProductService) Get(ctx context.Context, in *wire.ProductRequest) (*wire.Product, error) {
	return s.find(ctx, in.ID)
}

func (s *ProductService) find(ctx context.Context, id string) (*wire.Product, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ? AND deleted_at IS NULL", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.Error(codes.NotFound, "product does not exist")
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get product: %v", err)
	}
	return p, nil
}

// Edit は商品を更新する。未設定のフィールドは現在の値を保持する。
func (s *ProductService) Edit(ctx context.Context, in *wire.EditProduct) (*wire.Product, error) {
	p, err := s.find(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, status.Error(codes.InvalidArgument, "price must not be negative")
	}

	merge := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	merge(&p.Name, in.Name)
	merge(&p.Category, in.Category)
	merge(&p.Description, in.Description)
	merge(&p.ImageID, in.ImageID)
	merge(&p.URL, in.URL)
	if in.Price > 0 {
		p.Price = in.Price
	}

	if _, err := s.store.db.ExecContext(ctx, `
		UPDATE products SET name = ?, category = ?, description = ?, price = ?, image_id = ?, url = ?
		WHERE id = ?`,
		p.Name, p.Category, p.Description, p.Price, p.ImageID, p.URL, p.ID,
	); err != nil {
		return nil, productWriteError(err)
	}
	return p, nil
}

// Delete は商品を論理削除し、削除した商品を返す。
func (s *ProductService) Delete(ctx context.Context, in *wire.ProductRequest) (*wire.Product, error) {
	p, err := s.find(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.db.ExecContext(ctx,
		"UPDATE products SET deleted_at = ? WHERE id = ?", s.store.timestamp(), p.ID,
	); err != nil {
		return nil, status.Errorf(codes.Internal, "delete product: %v", err)
	}
	s.logger.InfoContext(ctx, "商品を削除", "product_id", p.ID)
	return p, nil
}

// All は有効な商品を登録順に返す。
func (s *ProductService) All(ctx context.Context, _ *emptypb.Empty) (*wire.ProductResponseList, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE deleted_at IS NULL ORDER BY created_at, rowid")
	if err != nil {
		return nil, status.Errorf(codes.Internal, "query products: %v", err)
	}
	defer func() { _ = rows.Close() }()

	products := []*wire.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "scan product: %v", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, status.Errorf(codes.Internal, "query products: %v", err)
	}
	return &wire.ProductResponseList{Products: products}, nil
}

func scanProduct(row rowScanner) (*wire.Product, error) {
	var p wire.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Date, &p.Price, &p.ImageID, &p.URL); err != nil {
		return nil, err
	}
	return &p, nil
}

func productWriteError(err error) error {
	if _, ok := uniqueViolation(err); ok {
		return status.Error(codes.InvalidArgument, msgNameTaken)
	}
	return status.Errorf(codes.Internal, "write product: %v", err)
}
