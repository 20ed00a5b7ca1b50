package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nao1215/censudex/internal/wire"
)

// ImageService は画像サービス（wire.ImageServiceServer）の実装。
// アップロードされた画像はSQLiteに保存し、publicURL + "/images/{id}" で配信する。
type ImageService struct {
	store     *Store
	publicURL string
	logger    *slog.Logger
}

var _ wire.ImageServiceServer = (*ImageService)(nil)

// NewImageService は新しい ImageService を生成する。
func NewImageService(store *Store, publicURL string, logger *slog.Logger) *ImageService {
	return &ImageService{
		store:     store,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}
}

// Upload は画像を保存して参照を返す。画像として判定できないデータは InvalidArgument とする。
func (s *ImageService) Upload(ctx context.Context, in *wire.UploadImage) (*wire.ImageResponse, error) {
	if len(in.Image) == 0 {
		return nil, status.Error(codes.InvalidArgument, "image is empty")
	}
	contentType := http.DetectContentType(in.Image)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, status.Errorf(codes.InvalidArgument, "unsupported image type %q", contentType)
	}

	id := uuid.NewString()
	if _, err := s.store.db.ExecContext(ctx,
		"INSERT INTO images (id, content_type, data, created_at) VALUES (?, ?, ?, ?)",
		id, contentType, in.Image, s.store.timestamp(),
	); err != nil {
		return nil, status.Errorf(codes.Internal, "store image: %v", err)
	}

	s.logger.InfoContext(ctx, "画像を保存", "image_id", id, "content_type", contentType, "size", len(in.Image))
	return &wire.ImageResponse{ID: id, URL: fmt.Sprintf("%s/images/%s", s.publicURL, id)}, nil
}

// errImageNotFound は画像が存在しない場合のエラー。
var errImageNotFound = errors.New("image not found")

// Image は保存された画像とそのContent-Typeを返す。
func (s *ImageService) Image(ctx context.Context, id string) (data []byte, contentType string, err error) {
	err = s.store.db.QueryRowContext(ctx,
		"SELECT data, content_type FROM images WHERE id = ?", id,
	).Scan(&data, &contentType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", errImageNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("画像の取得に失敗: %w", err)
	}
	return data, contentType, nil
}
