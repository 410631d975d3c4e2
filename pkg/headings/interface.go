package headings

import (
	"context"
)

// Fetcher は、HTMLドキュメントの生バイト配列を取得する機能のインターフェースです。
// Extractor はこの抽象に依存します。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
