package sandbox

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// pngHeader は http.DetectContentType が image/png と判定する最小のバイト列。
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// testClock はテストで進められる時計。
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// newTestSandbox はインメモリSQLiteでサンドボックスを構築する。
func newTestSandbox(t *testing.T) (*Sandbox, *testClock) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(context.Background(), ":memory:", logger)
	if err != nil {
		t.Fatalf("ストアの作成に失敗: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := &testClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	store.now = clock.Now

	sb, err := New(context.Background(), store, Options{
		PublicURL:     "http://sandbox.test/",
		JWTSecret:     "test-secret-key-0123456789",
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@censudex.local",
		AdminPassword: "admin-pass",
		HashCost:      bcrypt.MinCost,
	}, logger)
	if err != nil {
		t.Fatalf("サンドボックスの作成に失敗: %v", err)
	}
	return sb, clock
}

// assertCode はエラーのgRPCステータスコードを検証する。
func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if got := status.Code(err); got != want {
		t.Errorf("code = %s, want %s (err=%v)", got, want, err)
	}
}

// TestOpen はストアの初期化を検証する。
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("同じファイルを2回開いてもマイグレーションが重複しないこと", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		path := t.TempDir() + "/sandbox.db"
		for range 2 {
			store, err := Open(context.Background(), path, logger)
			if err != nil {
				t.Fatalf("Open()でエラーが発生: %v", err)
			}
			var count int
			if err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
				t.Fatalf("件数の取得に失敗: %v", err)
			}
			if count != 3 {
				t.Errorf("適用済みマイグレーション数 = %d, want 3", count)
			}
			_ = store.Close()
		}
	})

	t.Run("管理者アカウントは1度だけ作成されること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		if err := sb.Users.EnsureAdmin(context.Background(), "admin@censudex.local", "other"); err != nil {
			t.Fatalf("EnsureAdmin()でエラーが発生: %v", err)
		}
		_, role, err := sb.Users.Authenticate(context.Background(), "admin@censudex.local", "admin-pass")
		if err != nil {
			t.Fatalf("Authenticate()でエラーが発生: %v", err)
		}
		if role != RoleAdmin {
			t.Errorf("role = %q, want %q", role, RoleAdmin)
		}
	})
}
