package wire

import (
	"context"

	"google.golang.org/grpc"
)

// ユーザーサービスのRPCメソッド名。
const (
	UserServiceName              = "user.UserService"
	UserServiceCreateUserMethod  = "/user.UserService/CreateUser"
	UserServiceGetUserMethod     = "/user.UserService/GetUser"
	UserServiceGetUserByIDMethod = "/user.UserService/GetUserById"
	UserServiceUpdateUserMethod  = "/user.UserService/UpdateUser"
	UserServiceDeleteUserMethod  = "/user.UserService/DeleteUser"
)

// User はユーザーサービスが管理するクライアント。
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Lastnames string `json:"lastnames"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Birthdate string `json:"birthdate"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// CreateUserRequest はクライアント作成リクエスト。
type CreateUserRequest struct {
	Name      string `json:"name"`
	Lastnames string `json:"lastnames"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Birthdate string `json:"birthdate"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// UserResponse は作成・更新の結果。
type UserResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// GetUserRequest は一覧取得時のフィルタ。空文字のフィルタは適用されない。
type GetUserRequest struct {
	Namefilter     string `json:"namefilter,omitempty"`
	Emailfilter    string `json:"emailfilter,omitempty"`
	Isactivefilter string `json:"isactivefilter,omitempty"`
	Usernamefilter string `json:"usernamefilter,omitempty"`
}

// GetUserResponse は一覧取得の結果。
type GetUserResponse struct {
	Users []*User `json:"users"`
}

// GetUserIDRequest はID指定の取得リクエスト。
type GetUserIDRequest struct {
	ID string `json:"id"`
}

// UpdateUserRequest はクライアント更新リクエスト。空のフィールドは更新しない。
type UpdateUserRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Lastnames string `json:"lastnames,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password,omitempty"`
}

// DeleteUserRequest は削除リクエスト。
type DeleteUserRequest struct {
	ID string `json:"id"`
}

// DeleteUserResponse は削除の結果。
type DeleteUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserServiceClient はユーザーサービスのgRPCクライアント。
type UserServiceClient interface {
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*UserResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error)
	GetUserByID(ctx context.Context, in *GetUserIDRequest, opts ...grpc.CallOption) (*User, error)
	UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserResponse, error)
	DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error)
}

type userServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUserServiceClient はユーザーサービスのクライアントを生成する。
func NewUserServiceClient(cc grpc.ClientConnInterface) UserServiceClient {
	return &userServiceClient{cc: cc}
}

func (c *userServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	out := new(UserResponse)
	if err := invoke(ctx, c.cc, UserServiceCreateUserMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	out := new(GetUserResponse)
	if err := invoke(ctx, c.cc, UserServiceGetUserMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) GetUserByID(ctx context.Context, in *GetUserIDRequest, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := invoke(ctx, c.cc, UserServiceGetUserByIDMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	out := new(UserResponse)
	if err := invoke(ctx, c.cc, UserServiceUpdateUserMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error) {
	out := new(DeleteUserResponse)
	if err := invoke(ctx, c.cc, UserServiceDeleteUserMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// UserServiceServer はユーザーサービスのサーバー実装が満たすインターフェース。
type UserServiceServer interface {
	CreateUser(context.Context, *CreateUserRequest) (*UserResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	GetUserByID(context.Context, *GetUserIDRequest) (*User, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UserResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error)
}

// RegisterUserServiceServer はユーザーサービスをgRPCサーバーに登録する。
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&userServiceDesc, srv)
}

var userServiceDesc = grpc.ServiceDesc{
	ServiceName: UserServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler: unaryHandler(UserServiceCreateUserMethod, func(srv any, ctx context.Context, in *CreateUserRequest) (*UserResponse, error) {
				return srv.(UserServiceServer).CreateUser(ctx, in)
			}),
		},
		{
			MethodName: "GetUser",
			Handler: unaryHandler(UserServiceGetUserMethod, func(srv any, ctx context.Context, in *GetUserRequest) (*GetUserResponse, error) {
				return srv.(UserServiceServer).GetUser(ctx, in)
			}),
		},
		{
			MethodName: "GetUserById",
			Handler: unaryHandler(UserServiceGetUserByIDMethod, func(srv any, ctx context.Context, in *GetUserIDRequest) (*User, error) {
				return srv.(UserServiceServer).GetUserByID(ctx, in)
			}),
		},
		{
			MethodName: "UpdateUser",
			Handler: unaryHandler(UserServiceUpdateUserMethod, func(srv any, ctx context.Context, in *UpdateUserRequest) (*UserResponse, error) {
				return srv.(UserServiceServer).UpdateUser(ctx, in)
			}),
		},
		{
			MethodName: "DeleteUser",
			Handler: unaryHandler(UserServiceDeleteUserMethod, func(srv any, ctx context.Context, in *DeleteUserRequest) (*DeleteUserResponse, error) {
				return srv.(UserServiceServer).DeleteUser(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "user.proto",
}
