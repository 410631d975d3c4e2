package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const (
	// MaxBodySize は、レスポンスボディの最大読み込みサイズです。
	MaxBodySize = int64(10 * 1024 * 1024) // 10MB

	// maxErrorBodyLength は、エラーメッセージに含めるボディの最大長です。
	maxErrorBodyLength = 1024

	// サイトからのブロックを避けるためのUser-Agent
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
)

var (
	// ErrInvalidURL は、URLが不正 (パース不可、スキームなし、http/https以外) であることを示します。
	ErrInvalidURL = errors.New("無効なURLです")
	// ErrRequest は、ネットワーク/接続レベルでリクエストが完了しなかったことを示します。
	ErrRequest = errors.New("HTTPリクエストに失敗しました")
)

// Doer は、標準の *http.Client.Do() と互換性のあるHTTPクライアントのインターフェースです。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPStatusError は、2xx以外のステータスコードを示すエラー型です。
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("HTTPステータスエラー: ステータスコード %d, ボディなし", e.StatusCode)
	}
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength] + "..."
	}
	return fmt.Sprintf("HTTPステータスエラー: ステータスコード %d, ボディ: %s", e.StatusCode, body)
}

// Client は、1回のGETでHTMLを取得するクライアントです。リトライは行いません。
type Client struct {
	httpClient Doer
	logger     *zap.Logger
}

// Option は Client の設定を行うための関数型です。
type Option func(*Client)

// WithHTTPClient はカスタムのDoerを設定します。
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLogger はロガーを設定します。
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New は新しいClientを生成します。
// デフォルトのDoerはタイムアウト未設定の *http.Client です。
func New(options ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchBytes はURLに対してGETを1回実行し、UTF-8に変換したボディを返します。
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("GETリクエスト作成に失敗しました: %w: %w", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	c.logger.Debug("GETリクエストを送信します", zap.String("url", rawURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w (ネットワーク/接続エラー, URL: %s): %w", ErrRequest, rawURL, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("レスポンスを受信しました",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.Header.Get("Content-Type")),
	)

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	return readBody(resp)
}

// validateURL は、スキームが http または https で、ホストを含むURLかを検証します。
// スキームの補完は行いません。
func validateURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: URLのパースエラー: %w", ErrInvalidURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%w: httpまたはhttpsのスキームを指定してください: %q", ErrInvalidURL, rawURL)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%w: ホストがありません: %q", ErrInvalidURL, rawURL)
	}
	return nil
}

// checkResponse は2xx以外のステータスを HTTPStatusError として返します。
// ボディを読み込みますが、閉じるのは呼び出し元の責務です。
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength+1))
	if readErr != nil {
		return &HTTPStatusError{StatusCode: resp.StatusCode}
	}
	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
	}
}

// readBody は MaxBodySize を上限にボディを読み込み、Content-Type の charset に従ってUTF-8へ変換します。
func readBody(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: レスポンスボディの読み込みに失敗しました: %w", ErrRequest, err)
	}
	if int64(len(raw)) > MaxBodySize {
		return nil, fmt.Errorf("レスポンスボディが最大サイズ (%dバイト) を超えました", MaxBodySize)
	}
	// 空のボディは文字コード判定の対象外 (判定時に EOF となる)
	if len(raw) == 0 {
		return raw, nil
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("文字コードの判定に失敗しました: %w", err)
	}
	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("UTF-8への変換に失敗しました: %w", err)
	}
	return body, nil
}

// IsStatusError は与えられたエラーが HTTPStatusError であるかを判断します。
func IsStatusError(err error) bool {
	_, ok := StatusCode(err)
	return ok
}

// StatusCode はエラーチェーンから HTTP ステータスコードを取り出します。
func StatusCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}
