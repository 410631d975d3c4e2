package headings

import (
	"fmt"
	"io"
)

// WriteReport は見出しの件数と番号付きの一覧を書き出します。
func WriteReport(w io.Writer, headings []string) error {
	if _, err := fmt.Fprintf(w, "Found %d <h2> headings on the page.\n", len(headings)); err != nil {
		return fmt.Errorf("結果の出力に失敗しました: %w", err)
	}
	for i, heading := range headings {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, heading); err != nil {
			return fmt.Errorf("結果の出力に失敗しました: %w", err)
		}
	}
	return nil
}
