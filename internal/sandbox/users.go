package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nao1215/censudex/internal/wire"
)

// ロール。管理者以外はすべて RoleClient で作成される。
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// UserService はユーザーサービス（wire.UserServiceServer）の実装。
type UserService struct {
	store    *Store
	logger   *slog.Logger
	hashCost int
}

var _ wire.UserServiceServer = (*UserService)(nil)

// NewUserService は新しい UserService を生成する。hashCost が0の場合は bcrypt.DefaultCost を使う。
func NewUserService(store *Store, hashCost int, logger *slog.Logger) *UserService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &UserService{store: store, logger: logger, hashCost: hashCost}
}

const userColumns = "id, name, lastnames, email, username, birthdate, address, phone, is_active, created_at"

// CreateUser はクライアントを作成する。
func (s *UserService) CreateUser(ctx context.Context, in *wire.CreateUserRequest) (*wire.UserResponse, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email, username and password are required")
	}
	user, err := s.insert(ctx, in, RoleClient)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "クライアントを作成", "user_id", user.ID)
	return &wire.UserResponse{Message: "user created", User: user}, nil
}

// EnsureAdmin は管理者アカウントが存在しなければ作成する。
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	var exists bool
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email,
	).Scan(&exists); err != nil {
		return fmt.Errorf("管理者の確認に失敗: %w", err)
	}
	if exists {
		return nil
	}

	username, _, _ := strings.Cut(email, "@")
	if _, err := s.insert(ctx, &wire.CreateUserRequest{
		Name:      "Administrator",
		Lastnames: "Censudex",
		Email:     email,
		Username:  username,
		Password:  password,
	}, RoleAdmin); err != nil {
		return fmt.Errorf("管理者の作成に失敗: %w", err)
	}
	s.logger.InfoContext(ctx, "管理者アカウントを作成", "email", email)
	return nil
}

func (s *UserService) insert(ctx context.Context, in *wire.CreateUserRequest, role string) (*wire.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid password: %v", err)
	}

	user := &wire.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Lastnames: in.Lastnames,
		Email:     in.Email,
		Username:  in.Username,
		Birthdate: in.Birthdate,
		Address:   in.Address,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: s.store.timestamp(),
	}
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, name, lastnames, email, username, birthdate, address, phone, password_hash, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		user.ID, user.Name, user.Lastnames, user.Email, user.Username,
		user.Birthdate, user.Address, user.Phone, string(hash), role, user.CreatedAt,
	)
	if err != nil {
		return nil, userWriteError(err)
	}
	return user, nil
}

// GetUser はフィルタに一致するクライアントの一覧を返す。
// 名前・メール・ユーザー名は部分一致、isactivefilter は "true" か "false"。
func (s *UserService) GetUser(ctx context.Context, in *wire.GetUserRequest) (*wire.GetUserResponse, error) {
	var (
		where []string
		args  []any
	)
	if in.Namefilter != "" {
		where = append(where, "(name LIKE ? OR lastnames LIKE ?)")
		args = append(args, "%"+in.Namefilter+"%", "%"+in.Namefilter+"%")
	}
	if in.Emailfilter != "" {
		where = append(where, "email LIKE ?")
		args = append(args, "%"+in.Emailfilter+"%")
	}
	if in.Usernamefilter != "" {
		where = append(where, "username LIKE ?")
		args = append(args, "%"+in.Usernamefilter+"%")
	}
	if in.Isactivefilter != "" {
		active, err := strconv.ParseBool(in.Isactivefilter)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "isactivefilter must be true or false: %q", in.Isactivefilter)
		}
		where = append(where, "is_active = ?")
		args = append(args, active)
	}

	query := "SELECT " + userColumns + " FROM users"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, rowid"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "query users: %v", err)
	}
	defer func() { _ = rows.Close() }()

	users := []*wire.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "scan user: %v", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, status.Errorf(codes.Internal, "query users: %v", err)
	}
	return &wire.GetUserResponse{Users: users}, nil
}

// GetUserByID はID指定でクライアントを返す。
func (s *UserService) GetUserByID(ctx context.Context, in *wire.GetUserIDRequest) (*wire.User, error) {
	return s.find(ctx, in.ID)
}

func (s *UserService) find(ctx context.Context, id string) (*wire.User, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.Errorf(codes.NotFound, "user with id '%s' does not exist", id)
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get user: %v", err)
	}
	return u, nil
}

// UpdateUser はクライアントを更新する。空のフィールドは現在の値を保持する。
func (s *UserService) UpdateUser(ctx context.Context, in *wire.UpdateUserRequest) (*wire.UserResponse, error) {
	current, err := s.find(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	merge := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	merge(&current.Name, in.Name)
	merge(&current.Lastnames, in.Lastnames)
	merge(&current.Email, in.Email)
	merge(&current.Username, in.Username)
	merge(&current.Birthdate, in.Birthdate)
	merge(&current.Address, in.Address)
	merge(&current.Phone, in.Phone)

	err = s.store.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET name = ?, lastnames = ?, email = ?, username = ?, birthdate = ?, address = ?, phone = ?
			WHERE id = ?`,
			current.Name, current.Lastnames, current.Email, current.Username,
			current.Birthdate, current.Address, current.Phone, current.ID,
		); err != nil {
			return userWriteError(err)
		}
		if in.Password == "" {
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
		if err != nil {
			return status.Errorf(codes.InvalidArgument, "invalid password: %v", err)
		}
		_, err = tx.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", string(hash), current.ID)
		return err
	})
	if err != nil {
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		return nil, status.Errorf(codes.Internal, "update user: %v", err)
	}
	return &wire.UserResponse{Message: "user updated", User: current}, nil
}

// DeleteUser はクライアントを無効化する。既に無効な場合は success=false を返す。
func (s *UserService) DeleteUser(ctx context.Context, in *wire.DeleteUserRequest) (*wire.DeleteUserResponse, error) {
	current, err := s.find(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !current.IsActive {
		return &wire.DeleteUserResponse{Success: false, Message: "user is already inactive"}, nil
	}
	if _, err := s.store.db.ExecContext(ctx, "UPDATE users SET is_active = 0 WHERE id = ?", in.ID); err != nil {
		return nil, status.Errorf(codes.Internal, "delete user: %v", err)
	}
	s.logger.InfoContext(ctx, "クライアントを無効化", "user_id", in.ID)
	return &wire.DeleteUserResponse{Success: true, Message: "user deactivated"}, nil
}

// account はログインに必要なユーザー情報。
type account struct {
	ID           string
	Role         string
	PasswordHash string
	Active       bool
}

// Authenticate はメールアドレスとパスワードを照合し、ユーザーIDとロールを返す。
// 一致しない場合と無効なユーザーの場合は同じエラーを返す。
func (s *UserService) Authenticate(ctx context.Context, email, password string) (id, role string, err error) {
	var a account
	err = s.store.db.QueryRowContext(ctx,
		"SELECT id, role, password_hash, is_active FROM users WHERE email = ?", email,
	).Scan(&a.ID, &a.Role, &a.PasswordHash, &a.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", errInvalidCredentials
	}
	if err != nil {
		return "", "", fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}
	if !a.Active || bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return "", "", errInvalidCredentials
	}
	return a.ID, a.Role, nil
}

var errInvalidCredentials = errors.New("invalid credentials")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*wire.User, error) {
	var u wire.User
	if err := row.Scan(&u.ID, &u.Name, &u.Lastnames, &u.Email, &u.Username,
		&u.Birthdate, &u.Address, &u.Phone, &u.IsActive, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func userWriteError(err error) error {
	if column, ok := uniqueViolation(err); ok {
		field := strings.TrimPrefix(column, "users.")
		return status.Errorf(codes.AlreadyExists, "%s already in use", field)
	}
	return status.Errorf(codes.Internal, "write user: %v", err)
}
