// Package dto はゲートウェイが公開するREST/JSONの入出力形式を定義する。
//
// いずれもリクエスト単位の値オブジェクトであり、リクエストをまたいで共有されない。
// バックエンドのワイヤ形式との変換は backend パッケージが行う。
// binding タグはginのバリデーション（go-playground/validator）で評価される。
package dto

// Client はRESTで返すクライアント。
type Client struct {
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

// CreateClient はクライアント作成の入力。
type CreateClient struct {
	Name      string `json:"name" binding:"required"`
	Lastnames string `json:"lastnames" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Birthdate string `json:"birthdate"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required"`
}

// UpdateClient はクライアント更新の入力。空のフィールドは更新しない。
type UpdateClient struct {
	Name      string `json:"name"`
	Lastnames string `json:"lastnames"`
	Email     string `json:"email" binding:"omitempty,email"`
	Username  string `json:"username"`
	Birthdate string `json:"birthdate"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// ClientFilter はクライアント一覧のクエリフィルタ。
type ClientFilter struct {
	Name     string `form:"namefilter"`
	Email    string `form:"emailfilter"`
	IsActive string `form:"isactivefilter"`
	Username string `form:"usernamefilter"`
}

// ClientResult は作成・更新の結果。
type ClientResult struct {
	Message string  `json:"message"`
	Client  *Client `json:"client,omitempty"`
}

// OperationResult は削除・状態変更の結果。
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ClientList はクライアント一覧。
type ClientList struct {
	Users []Client `json:"users"`
}
