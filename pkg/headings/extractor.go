package headings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultSelector は抽出対象の見出し要素です。
const DefaultSelector = "h2"

// Extractor は、Fetcher を使って見出し抽出プロセスを管理します。
type Extractor struct {
	fetcher  Fetcher
	selector string
	logger   *zap.Logger
}

// Option は Extractor の設定を行うための関数型です。
type Option func(*Extractor)

// WithLogger はロガーを設定します。
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSelector は見出しのセレクターを上書きします。
func WithSelector(selector string) Option {
	return func(e *Extractor) {
		if strings.TrimSpace(selector) != "" {
			e.selector = selector
		}
	}
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher, opts ...Option) (*Extractor, error) {
	if fetcher == nil {
		return nil, errors.New("headings.NewExtractor: Fetcher cannot be nil")
	}
	e := &Extractor{
		fetcher:  fetcher,
		selector: DefaultSelector,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// FetchHeadings は指定されたURLからHTMLを取得し、見出しのテキストを文書順に返します。
// 取得に失敗した場合は部分的な結果を返さず、エラーをそのまま伝播します。
func (e *Extractor) FetchHeadings(ctx context.Context, url string) ([]string, error) {
	htmlBytes, err := e.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("HTMLの取得に失敗しました (URL: %s): %w", url, err)
	}

	headings, err := e.Extract(bytes.NewReader(htmlBytes))
	if err != nil {
		return nil, fmt.Errorf("見出しの抽出に失敗しました (URL: %s): %w", url, err)
	}

	e.logger.Debug("見出しを抽出しました",
		zap.String("url", url),
		zap.String("selector", e.selector),
		zap.Int("count", len(headings)),
	)
	return headings, nil
}

// Extract はHTMLをパースし、セレクターに一致する要素のテキストを抽出します。
func (e *Extractor) Extract(r io.Reader) ([]string, error) {
	return extract(r, e.selector)
}

// ExtractHeadings は、HTMLから <h2> 要素のテキストを文書順に抽出します。
func ExtractHeadings(r io.Reader) ([]string, error) {
	return extract(r, DefaultSelector)
}

func extract(r io.Reader, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("HTML解析に失敗しました: %w", err)
	}

	headings := make([]string, 0)
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		headings = append(headings, strippedText(s))
	})
	return headings, nil
}

// strippedText は子孫のテキストノードをそれぞれトリムし、区切り文字なしで連結します。
// 空白のみのテキストノードは結果に影響しません。
func strippedText(s *goquery.Selection) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return sb.String()
}
