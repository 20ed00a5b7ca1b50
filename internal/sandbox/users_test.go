package sandbox

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"

	"github.com/nao1215/censudex/internal/wire"
)

func newUser(email, username string) *wire.CreateUserRequest {
	return &wire.CreateUserRequest{
		Name:      "Ana",
		Lastnames: "Rojas Pérez",
		Email:     email,
		Username:  username,
		Birthdate: "1990-05-01",
		Address:   "Av. Angamos 0610",
		Phone:     "+56912345678",
		Password:  "secret",
	}
}

// TestUserService はユーザーサービスを検証する。
func TestUserService(t *testing.T) {
	t.Parallel()

	t.Run("作成したクライアントをIDで取得できること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()

		created, err := sb.Users.CreateUser(ctx, newUser("ana@example.com", "ana"))
		if err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}
		if created.User == nil || created.User.ID == "" || !created.User.IsActive {
			t.Fatalf("作成結果 = %+v", created)
		}
		if created.User.CreatedAt != "2025-03-14T09:00:00Z" {
			t.Errorf("CreatedAt = %q", created.User.CreatedAt)
		}

		got, err := sb.Users.GetUserByID(ctx, &wire.GetUserIDRequest{ID: created.User.ID})
		if err != nil {
			t.Fatalf("GetUserByID()でエラーが発生: %v", err)
		}
		if *got != *created.User {
			t.Errorf("取得結果 = %+v, want %+v", got, created.User)
		}
	})

	t.Run("メールアドレスとユーザー名の重複はAlreadyExistsになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		if _, err := sb.Users.CreateUser(ctx, newUser("ana@example.com", "ana")); err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}

		_, err := sb.Users.CreateUser(ctx, newUser("ana@example.com", "ana2"))
		assertCode(t, err, codes.AlreadyExists)
		_, err = sb.Users.CreateUser(ctx, newUser("other@example.com", "ana"))
		assertCode(t, err, codes.AlreadyExists)
	})

	t.Run("必須項目がない場合はInvalidArgumentになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		_, err := sb.Users.CreateUser(context.Background(), &wire.CreateUserRequest{Email: "x@example.com"})
		assertCode(t, err, codes.InvalidArgument)
	})

	t.Run("フィルタで絞り込めること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		ana, err := sb.Users.CreateUser(ctx, newUser("ana@example.com", "ana"))
		if err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}
		bob := newUser("bob@example.com", "bob")
		bob.Name = "Bob"
		bob.Lastnames = "Soto"
		if _, err := sb.Users.CreateUser(ctx, bob); err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}
		if _, err := sb.Users.DeleteUser(ctx, &wire.DeleteUserRequest{ID: ana.User.ID}); err != nil {
			t.Fatalf("DeleteUser()でエラーが発生: %v", err)
		}

		tests := []struct {
			name   string
			filter *wire.GetUserRequest
			want   []string
		}{
			{name: "フィルタなし", filter: &wire.GetUserRequest{}, want: []string{"admin", "ana", "bob"}},
			{name: "名前の部分一致", filter: &wire.GetUserRequest{Namefilter: "Rojas"}, want: []string{"ana"}},
			{name: "メールの部分一致", filter: &wire.GetUserRequest{Emailfilter: "bob@"}, want: []string{"bob"}},
			{name: "ユーザー名", filter: &wire.GetUserRequest{Usernamefilter: "an"}, want: []string{"ana"}},
			{name: "無効なクライアント", filter: &wire.GetUserRequest{Isactivefilter: "false"}, want: []string{"ana"}},
			{name: "組み合わせ", filter: &wire.GetUserRequest{Isactivefilter: "true", Emailfilter: "example.com"}, want: []string{"bob"}},
		}
		for _, tt := range tests {
			resp, err := sb.Users.GetUser(ctx, tt.filter)
			if err != nil {
				t.Fatalf("%s: GetUser()でエラーが発生: %v", tt.name, err)
			}
			var got []string
			for _, u := range resp.Users {
				got = append(got, u.Username)
			}
			if len(got) != len(tt.want) {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
				continue
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
					break
				}
			}
		}

		_, err = sb.Users.GetUser(ctx, &wire.GetUserRequest{Isactivefilter: "maybe"})
		assertCode(t, err, codes.InvalidArgument)
	})

	t.Run("更新は空のフィールドを保持しパスワードを変更できること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		created, err := sb.Users.CreateUser(ctx, newUser("ana@example.com", "ana"))
		if err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}

		updated, err := sb.Users.UpdateUser(ctx, &wire.UpdateUserRequest{
			ID:       created.User.ID,
			Phone:    "+56900000000",
			Password: "new-secret",
		})
		if err != nil {
			t.Fatalf("UpdateUser()でエラーが発生: %v", err)
		}
		if updated.User.Phone != "+56900000000" || updated.User.Name != "Ana" {
			t.Errorf("更新結果 = %+v", updated.User)
		}
		if _, _, err := sb.Users.Authenticate(ctx, "ana@example.com", "new-secret"); err != nil {
			t.Errorf("新しいパスワードで認証できない: %v", err)
		}
		if _, _, err := sb.Users.Authenticate(ctx, "ana@example.com", "secret"); !errors.Is(err, errInvalidCredentials) {
			t.Errorf("古いパスワードの認証結果 = %v, want errInvalidCredentials", err)
		}
	})

	t.Run("他のクライアントのメールアドレスへの更新はAlreadyExistsになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		ana, err := sb.Users.CreateUser(ctx, newUser("ana@example.com", "ana"))
		if err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}
		if _, err := sb.Users.CreateUser(ctx, newUser("bob@example.com", "bob")); err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}

		_, err = sb.Users.UpdateUser(ctx, &wire.UpdateUserRequest{ID: ana.User.ID, Email: "bob@example.com"})
		assertCode(t, err, codes.AlreadyExists)
	})

	t.Run("存在しないIDはNotFoundになること", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		_, err := sb.Users.GetUserByID(ctx, &wire.GetUserIDRequest{ID: "missing"})
		assertCode(t, err, codes.NotFound)
		_, err = sb.Users.UpdateUser(ctx, &wire.UpdateUserRequest{ID: "missing", Name: "x"})
		assertCode(t, err, codes.NotFound)
		_, err = sb.Users.DeleteUser(ctx, &wire.DeleteUserRequest{ID: "missing"})
		assertCode(t, err, codes.NotFound)
	})

	t.Run("無効化したクライアントは2回目の削除で失敗しログインできないこと", func(t *testing.T) {
		t.Parallel()

		sb, _ := newTestSandbox(t)
		ctx := context.Background()
		created, err := sb.Users.CreateUser(ctx, newUser("ana@example.com", "ana"))
		if err != nil {
			t.Fatalf("CreateUser()でエラーが発生: %v", err)
		}

		first, err := sb.Users.DeleteUser(ctx, &wire.DeleteUserRequest{ID: created.User.ID})
		if err != nil || !first.Success {
			t.Fatalf("1回目のDeleteUser() = %+v, %v", first, err)
		}
		second, err := sb.Users.DeleteUser(ctx, &wire.DeleteUserRequest{ID: created.User.ID})
		if err != nil {
			t.Fatalf("2回目のDeleteUser()でエラーが発生: %v", err)
		}
		if second.Success {
			t.Error("2回目のDeleteUser()のSuccess = true, want false")
		}
		if _, _, err := sb.Users.Authenticate(ctx, "ana@example.com", "secret"); !errors.Is(err, errInvalidCredentials) {
			t.Errorf("Authenticate() = %v, want errInvalidCredentials", err)
		}
	})
}
