package backend

import (
	"context"

	"google.golang.org/grpc"

	"github.com/nao1215/censudex/internal/dto"
	"github.com/nao1215/censudex/internal/wire"
)

// IdentityClient はユーザーサービスをgRPCで呼び出す Identity の実装。
type IdentityClient struct {
	rpc wire.UserServiceClient
}

var _ Identity = (*IdentityClient)(nil)

// NewIdentityClient は新しい IdentityClient を生成する。
func NewIdentityClient(cc grpc.ClientConnInterface) *IdentityClient {
	return &IdentityClient{rpc: wire.NewUserServiceClient(cc)}
}

// CreateUser はクライアントを作成する。
func (c *IdentityClient) CreateUser(ctx context.Context, in dto.CreateClient) (dto.ClientResult, error) {
	resp, err := c.rpc.CreateUser(ctx, &wire.CreateUserRequest{
		Name:      in.Name,
		Lastnames: in.Lastnames,
		Email:     in.Email,
		Username:  in.Username,
		Birthdate: in.Birthdate,
		Address:   in.Address,
		Phone:     in.Phone,
		Password:  in.Password,
	})
	if err != nil {
		return dto.ClientResult{}, fail(err)
	}
	return toClientResult(resp), nil
}

// GetUsers はフィルタに一致するクライアントの一覧を取得する。
// 空白のみのフィルタは送信しない。
func (c *IdentityClient) GetUsers(ctx context.Context, filter dto.ClientFilter) ([]dto.Client, error) {
	resp, err := c.rpc.GetUser(ctx, &wire.GetUserRequest{
		Namefilter:     nonBlank(filter.Name),
		Emailfilter:    nonBlank(filter.Email),
		Isactivefilter: nonBlank(filter.IsActive),
		Usernamefilter: nonBlank(filter.Username),
	})
	if err != nil {
		return nil, fail(err)
	}
	clients := make([]dto.Client, 0, len(resp.Users))
	for _, u := range resp.Users {
		if u == nil {
			continue
		}
		clients = append(clients, toClient(u))
	}
	return clients, nil
}

// GetUserByID はID指定でクライアントを取得する。
func (c *IdentityClient) GetUserByID(ctx context.Context, id string) (dto.Client, error) {
	resp, err := c.rpc.GetUserByID(ctx, &wire.GetUserIDRequest{ID: id})
	if err != nil {
		return dto.Client{}, fail(err)
	}
	return toClient(resp), nil
}

// UpdateUser はクライアントを更新する。空のフィールドは更新しない。
func (c *IdentityClient) UpdateUser(ctx context.Context, id string, in dto.UpdateClient) (dto.ClientResult, error) {
	resp, err := c.rpc.UpdateUser(ctx, &wire.UpdateUserRequest{
		ID:        id,
		Name:      in.Name,
		Lastnames: in.Lastnames,
		Email:     in.Email,
		Username:  in.Username,
		Birthdate: in.Birthdate,
		Address:   in.Address,
		Phone:     in.Phone,
		Password:  in.Password,
	})
	if err != nil {
		return dto.ClientResult{}, fail(err)
	}
	return toClientResult(resp), nil
}

// DeleteUser はクライアントを削除する。
func (c *IdentityClient) DeleteUser(ctx context.Context, id string) (dto.OperationResult, error) {
	resp, err := c.rpc.DeleteUser(ctx, &wire.DeleteUserRequest{ID: id})
	if err != nil {
		return dto.OperationResult{}, fail(err)
	}
	return dto.OperationResult{Success: resp.Success, Message: resp.Message}, nil
}

func toClient(u *wire.User) dto.Client {
	return dto.Client{
		ID:        u.ID,
		Name:      u.Name,
		Lastnames: u.Lastnames,
		Email:     u.Email,
		Username:  u.Username,
		Birthdate: u.Birthdate,
		Address:   u.Address,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toClientResult(resp *wire.UserResponse) dto.ClientResult {
	result := dto.ClientResult{Message: resp.Message}
	if resp.User != nil {
		client := toClient(resp.User)
		result.Client = &client
	}
	return result
}
