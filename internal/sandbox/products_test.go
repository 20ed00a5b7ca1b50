package sandbox

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/nao1215/censudex/internal/wire"
)

// storeProduct は画像をアップロードして商品を登録する。
func storeProduct(t *testing.T, sb *Sandbox, name string) *wire.Product {
	t.Helper()
	ctx := context.Background()
	img, err := sb.Images.Upload(ctx, &wire.UploadImage{Image: pngHeader})
	if err != nil {
		t.Fatalf("Upload()でエラーが発生: %v", err)
	}
	p, err := sb.Products.Store(ctx, &wire.CreationProduct{
		Name:        name,
		Category:    "tools",
		Description: "A " + name,
		ImageID:     img.ID,
		URL:         img.URL,
		Price:       1500,
	})
	if err != nil {
		t.Fatalf("Store()でエラーが発生: %v", err)
	}
	return p
}

// TestProductService は商品サービスを検証する。
func TestProductService(t *testing.T) {
	t.Parallel()

	t.Run("登録した商品を取得できること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		p := storeProduct(t, sb, "Widget")

		got, err := sb.Products.Get(context.Background(), &wire.ProductRequest{ID: p.ID})
		if err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}
		if *got != *p {
			t.Errorf("Get() = %+v, want %+v", got, p)
		}
		if !strings.HasPrefix(got.URL, "http://sandbox.test/images/") {
			t.Errorf("URL = %q", got.URL)
		}
	})

	t.Run("有効な商品と同じ名前はInvalidArgumentになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		storeProduct(t, sb, "Widget")

		_, err := sb.Products.Store(context.Background(), &wire.CreationProduct{
			Name: "Widget", Price: 10, ImageID: "i", URL: "u",
		})
		assertCode(t, err, codes.InvalidArgument)
	})

	t.Run("削除した商品の名前は再利用でき一覧から除かれること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		old := storeProduct(t, sb, "Widget")
		storeProduct(t, sb, "Gadget")

		deleted, err := sb.Products.Delete(ctx, &wire.ProductRequest{ID: old.ID})
		if err != nil {
			t.Fatalf("Delete()でエラーが発生: %v", err)
		}
		if deleted.ID != old.ID {
			t.Errorf("Delete() = %+v", deleted)
		}
		_, err = sb.Products.Get(ctx, &wire.ProductRequest{ID: old.ID})
		assertCode(t, err, codes.NotFound)
		_, err = sb.Products.Delete(ctx, &wire.ProductRequest{ID: old.ID})
		assertCode(t, err, codes.NotFound)

		storeProduct(t, sb, "Widget")
		list, err := sb.Products.All(ctx, &emptypb.Empty{})
		if err != nil {
			t.Fatalf("All()でエラーが発生: %v", err)
		}
		if len(list.Products) != 2 || list.Products[0].Name != "Gadget" || list.Products[1].Name != "Widget" {
			t.Errorf("All() = %+v", list.Products)
		}
	})

	t.Run("更新は未設定のフィールドを保持すること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		p := storeProduct(t, sb, "Widget")

		got, err := sb.Products.Edit(context.Background(), &wire.EditProduct{ID: p.ID, Price: 2000})
		if err != nil {
			t.Fatalf("Edit()でエラーが発生: %v", err)
		}
		if got.Price != 2000 || got.Name != "Widget" || got.URL != p.URL {
			t.Errorf("Edit() = %+v", got)
		}
	})

	t.Run("他の商品の名前への更新はInvalidArgumentになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		storeProduct(t, sb, "Widget")
		gadget := storeProduct(t, sb, "Gadget")

		_, err := sb.Products.Edit(context.Background(), &wire.EditProduct{ID: gadget.ID, Name: "Widget"})
		assertCode(t, err, codes.InvalidArgument)
	})

	t.Run("存在しない商品の更新はNotFoundになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		_, err := sb.Products.Edit(context.Background(), &wire.EditProduct{ID: "missing", Name: "x"})
		assertCode(t, err, codes.NotFound)
	})
}

// TestImageService は画像サービスを検証する。
func TestImageService(t *testing.T) {
	t.Parallel()

	t.Run("画像を保存して取り出せること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		ref, err := sb.Images.Upload(ctx, &wire.UploadImage{Image: pngHeader})
		if err != nil {
			t.Fatalf("Upload()でエラーが発生: %v", err)
		}
		if ref.URL != "http://sandbox.test/images/"+ref.ID {
			t.Errorf("URL = %q", ref.URL)
		}

		data, contentType, err := sb.Images.Image(ctx, ref.ID)
		if err != nil {
			t.Fatalf("Image()でエラーが発生: %v", err)
		}
		if contentType != "image/png" || string(data) != string(pngHeader) {
			t.Errorf("Image() = %q, %q", data, contentType)
		}
	})

	t.Run("空のデータと画像以外はInvalidArgumentになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		_, err := sb.Images.Upload(ctx, &wire.UploadImage{})
		assertCode(t, err, codes.InvalidArgument)
		_, err = sb.Images.Upload(ctx, &wire.UploadImage{Image: []byte("plain text")})
		assertCode(t, err, codes.InvalidArgument)
	})
}
