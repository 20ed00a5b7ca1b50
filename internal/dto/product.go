package dto

// CreateProduct は商品登録のメタデータ（マルチパートフォーム）。
type CreateProduct struct {
	Name        string `form:"name" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Description string `form:"description" binding:"required"`
	Price       int32  `form:"price" binding:"required,gt=0"`
}

// EditProduct は商品更新のメタデータ（マルチパートフォーム）。
// 空のフィールドはバックエンドが現在の値を保持する。
type EditProduct struct {
	Name        string `form:"name"`
	Category    string `form:"category"`
	Description string `form:"description"`
	Price       int32  `form:"price" binding:"gte=0"`
}

// Product はRESTで返す商品。
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Price       int32  `json:"price"`
	URL         string `json:"url"`
}

// ProductList は商品一覧。
type ProductList struct {
	Products []Product `json:"products"`
}

// ImageRef はアップロード済み画像への参照。
type ImageRef struct {
	ID  string `json:"imageId"`
	URL string `json:"url"`
}

// Credentials はログインの入力。
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenBody はボディでトークンを渡す場合の入力。
type TokenBody struct {
	Token string `json:"token"`
}
