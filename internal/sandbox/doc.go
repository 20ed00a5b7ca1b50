// Package sandbox はゲートウェイをローカルで動かすための開発用バックエンドを提供する。
//
// ユーザー、注文、商品、画像の4つのgRPCサービスと、認証サービス（HTTP）を
// 1つのSQLiteデータベースの上に実装する。業務ルールはゲートウェイの挙動を確認できる
// 程度に留めている。
//
// 主なルール:
//   - メールアドレスとユーザー名は一意（重複は AlreadyExists）
//   - 有効な商品の名前は一意（重複は InvalidArgument）
//   - 注文状態は pending → processing → shipped → delivered の順に進み、
//     shipped より前であれば cancelled にできる。不正な遷移は success=false で返す
//   - トークンはHS256で署名したJWT。ログアウトしたトークンは jti で失効させる
package sandbox
