package headings_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/shouni/go-cli-samples/pkg/headings"
	"github.com/shouni/go-cli-samples/pkg/httpclient"
)

// MockFetcher はテスト用の headings.Fetcher インターフェースの実装です。
type MockFetcher struct {
	htmlContent string
	fetchError  error
	calls       int
}

func (m *MockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	if m.fetchError != nil {
		return nil, m.fetchError
	}
	return []byte(m.htmlContent), nil
}

func TestNewExtractor(t *testing.T) {
	t.Run("success_with_valid_fetcher", func(t *testing.T) {
		extractor, err := headings.NewExtractor(&MockFetcher{})
		assert.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("error_with_nil_fetcher", func(t *testing.T) {
		extractor, err := headings.NewExtractor(nil)
		assert.Error(t, err)
		assert.Nil(t, extractor)
		assert.Contains(t, err.Error(), "Fetcher cannot be nil")
	})
}

func TestFetchHeadings(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		fetchErr error
		expected []string
		wantErr  bool
	}{
		{
			name:     "fetch_error",
			fetchErr: errors.New("network timeout"),
			wantErr:  true,
		},
		{
			name:     "no_headings",
			html:     `<html><head><title>Empty</title></head><body><h1>Top</h1><p>text</p></body></html>`,
			expected: []string{},
		},
		{
			name:     "two_headings_in_order",
			html:     `<h2>A</h2><h2>B</h2>`,
			expected: []string{"A", "B"},
		},
		{
			name: "trimmed_and_nested_text",
			html: `<html><body>
				<section><h2>
					Getting <em>started</em>
				</h2></section>
				<h3>ignored</h3>
				<div><div><h2>  Deep  </h2></div></div>
			</body></html>`,
			expected: []string{"Gettingstarted", "Deep"},
		},
		{
			name:     "fragments_joined_without_separator",
			html:     `<h2>Hello <b>World</b></h2><h2> a <!-- note --> b </h2>`,
			expected: []string{"HelloWorld", "ab"},
		},
		{
			name:     "duplicates_and_empty_kept",
			html:     `<h2>Same</h2><h2></h2><h2>Same</h2>`,
			expected: []string{"Same", "", "Same"},
		},
		{
			name:     "malformed_markup_is_tolerated",
			html:     `<h2>Open<p>para<h2>Next`,
			expected: []string{"Openpara", "Next"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &MockFetcher{htmlContent: tc.html, fetchError: tc.fetchErr}
			extractor, err := headings.NewExtractor(fetcher, headings.WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)

			actual, err := extractor.FetchHeadings(context.Background(), "https://example.com/"+tc.name)
			assert.Equal(t, 1, fetcher.calls)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.fetchErr)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFetchHeadings_Idempotent(t *testing.T) {
	extractor, err := headings.NewExtractor(&MockFetcher{htmlContent: `<h2>A</h2><h2>B</h2>`})
	require.NoError(t, err)

	first, err := extractor.FetchHeadings(context.Background(), "https://example.com")
	require.NoError(t, err)
	second, err := extractor.FetchHeadings(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWithSelector(t *testing.T) {
	html := `<h1>One</h1><h2>Two</h2><h3>Three</h3>`

	t.Run("custom selector", func(t *testing.T) {
		extractor, err := headings.NewExtractor(&MockFetcher{htmlContent: html}, headings.WithSelector("h1, h3"))
		require.NoError(t, err)
		actual, err := extractor.FetchHeadings(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"One", "Three"}, actual)
	})

	t.Run("blank selector keeps default", func(t *testing.T) {
		extractor, err := headings.NewExtractor(&MockFetcher{htmlContent: html}, headings.WithSelector("  "))
		require.NoError(t, err)
		actual, err := extractor.FetchHeadings(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"Two"}, actual)
	})
}

func TestExtractHeadings(t *testing.T) {
	actual, err := headings.ExtractHeadings(strings.NewReader(`<h2>A</h2><p>x</p><h2>B</h2>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, actual)

	empty, err := headings.ExtractHeadings(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFetchHeadings_HTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><h2>A</h2><h2>B</h2></body></html>`))
		case "/error":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := httpclient.New(httpclient.WithLogger(zaptest.NewLogger(t)))
	extractor, err := headings.NewExtractor(client)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		actual, err := extractor.FetchHeadings(context.Background(), server.URL+"/page")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, actual)
	})

	t.Run("not found fails without partial result", func(t *testing.T) {
		actual, err := extractor.FetchHeadings(context.Background(), server.URL+"/missing")
		require.Error(t, err)
		assert.Nil(t, actual)
		code, ok := httpclient.StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("server error fails", func(t *testing.T) {
		actual, err := extractor.FetchHeadings(context.Background(), server.URL+"/error")
		require.Error(t, err)
		assert.Nil(t, actual)
		assert.True(t, httpclient.IsStatusError(err))
	})

	t.Run("invalid url fails", func(t *testing.T) {
		_, err := extractor.FetchHeadings(context.Background(), "not a url")
		assert.ErrorIs(t, err, httpclient.ErrInvalidURL)
	})
}
