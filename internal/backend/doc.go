// Package backend はゲートウェイが呼び出すバックエンドサービスのアダプタを提供する。
//
// ドメインごとに能力インターフェース（Identity, Orders, Products, Images, Auth）を定義し、
// それぞれに1つの具象アダプタを持つ。アダプタはRESTのDTOをワイヤ形式に変換し、
// バックエンドを1回だけ呼び出して結果をDTOに戻す。リトライは行わない。
//
// 呼び出しが失敗した場合、返すエラーは常に *rpcstatus.Failure である。
// ハンドラはこれを rpcstatus で変換してHTTPのエラーエンベロープを返す。
package backend
