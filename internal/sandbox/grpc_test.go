package sandbox

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/nao1215/censudex/internal/wire"
)

// dial はサンドボックスのgRPCサーバーをbufconn上で起動して接続する。
func dial(t *testing.T, sb *Sandbox) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := sb.NewGRPCServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("gRPC接続に失敗: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// TestGRPCServer はJSONコーデックでサービスを呼び出せることを検証する。
func TestGRPCServer(t *testing.T) {
	t.Parallel()

	sb, _ := newTestSandbox(t)
	conn := dial(t, sb)
	ctx := context.Background()

	t.Run("ユーザーサービスの呼び出しとエラーコードが伝わること", func(t *testing.T) {
		users := wire.NewUserServiceClient(conn)
		created, err := users.CreateUser(ctx, newUser("grpc@example.com", "grpc"))
		if err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}
		if created.User == nil || created.User.Email != "grpc@example.com" {
			t.Errorf("CreateUser() = %+v", created)
		}
		_, err = users.CreateUser(ctx, newUser("grpc@example.com", "grpc2"))
		assertCode(t, err, codes.AlreadyExists)
	})

	t.Run("空のリクエストを受け取るRPCを呼び出せること", func(t *testing.T) {
		orders := wire.NewOrderServiceClient(conn)
		if _, err := orders.CreateOrder(ctx, newOrder("c-1")); err != nil {
			t.Fatalf("CreateOrder()でエラーが発生: %v", err)
		}
		list, err := orders.GetAllOrders(ctx, &emptypb.Empty{})
		if err != nil {
			t.Fatalf("GetAllOrders()でエラーが発生: %v", err)
		}
		if len(list.Orders) != 1 || len(list.Orders[0].Items) != 2 {
			t.Errorf("GetAllOrders() = %+v", list.Orders)
		}
	})

	t.Run("画像をアップロードして商品を登録できること", func(t *testing.T) {
		img, err := wire.NewImageServiceClient(conn).Upload(ctx, &wire.UploadImage{Image: pngHeader})
		if err != nil {
			t.Fatalf("Upload()でエラーが発生: %v", err)
		}
		products := wire.NewProductServiceClient(conn)
		p, err := products.Store(ctx, &wire.CreationProduct{
			Name: "Widget", Category: "tools", Description: "d", Price: 10, ImageID: img.ID, URL: img.URL,
		})
		if err != nil {
			t.Fatalf("Store()でエラーが発生: %v", err)
		}
		if p.ImageID != img.ID {
			t.Errorf("ImageID = %q, want %q", p.ImageID, img.ID)
		}
	})
}
