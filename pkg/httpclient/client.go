package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client はバックエンドのHTTPサービスを呼び出すクライアント。
// 1回の呼び出しにつき1回だけリクエストを送信し、リトライは行わない。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。コネクションは呼び出し間で再利用される。
	httpClient *http.Client
	// baseURL は接続先サービスのベースURL。
	baseURL string
}

// Option はクライアントの設定を変更する関数。
type Option func(*Client)

// WithTimeout はリクエスト全体のタイムアウトを設定する。
// 0 の場合はタイムアウトを設定しない（デフォルト）。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTransport は下位のトランスポートを差し替える。
// トレーシング用のラッパーを挟む場合に使う。
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先サービスのベースURL（例: "http://auth:5001"）を指定する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request は送信するリクエスト。
type Request struct {
	// Method はHTTPメソッド。
	Method string
	// Path はベースURLからの相対パス。
	Path string
	// Token は Authorization: Bearer として付与するトークン。空の場合は付与しない。
	Token string
	// Body はJSONボディ。nilの場合はボディなし。
	Body []byte
}

// Response はバックエンドのレスポンス。ステータスに関わらずボディをそのまま保持する。
type Response struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// ContentType はレスポンスのContent-Type。
	ContentType string
	// Body はレスポンスボディ。
	Body []byte
}

// OK はステータスコードが2xxかどうかを返す。
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do はリクエストを送信してレスポンスを返す。
// 2xx以外のステータスはエラーにせず Response として返す。
// エラーを返すのは通信そのものに失敗した場合のみ。
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	var bodyReader io.Reader
	if r.Body != nil {
		bodyReader = bytes.NewReader(r.Body)
	}

	url := c.baseURL + r.Path
	req, err := http.NewRequestWithContext(ctx, r.Method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	// コンテキストからリクエストIDを伝播する
	if requestID, ok := ctx.Value(contextKeyRequestID).(string); ok {
		req.Header.Set(HeaderRequestID, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスの読み取りに失敗: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// HeaderRequestID はサービス間でリクエストIDを伝播するためのHTTPヘッダーキー。
const HeaderRequestID = "X-Request-ID"

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyRequestID はコンテキストにリクエストIDを格納するためのキー。
const contextKeyRequestID contextKey = "request_id"

// WithRequestID はコンテキストにリクエストIDを設定する。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestID はコンテキストからリクエストIDを取得する。
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}
