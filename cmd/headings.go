package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-cli-samples/pkg/headings"
	"github.com/shouni/go-cli-samples/pkg/httpclient"
)

// defaultURL はデモ用の抽出対象URLです。--url で上書きできます。
const defaultURL = "https://example.com"

// runHeadingsPipeline は、見出しの取得と抽出を実行するメインロジックです。
func runHeadingsPipeline(ctx context.Context, rawURL string, extractor *headings.Extractor) ([]string, error) {
	list, err := extractor.FetchHeadings(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("見出し抽出パイプラインの実行エラー: %w", err)
	}
	return list, nil
}

func newHeadingsCmd(a *app) *cobra.Command {
	var rawURL string

	cmd := &cobra.Command{
		Use:   "headings",
		Short: "Webページの <h2> 見出しを抽出して一覧表示します",
		Long:  `指定されたURL（デフォルト: ` + defaultURL + `）にGETリクエストを1回送り、<h2> 要素のテキストを文書順に番号付きで表示します。`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Debug("処理対象URL", zap.String("url", rawURL))

			client := httpclient.New(httpclient.WithLogger(a.logger))
			extractor, err := headings.NewExtractor(client, headings.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("Extractorの初期化エラー: %w", err)
			}

			list, err := runHeadingsPipeline(cmd.Context(), rawURL, extractor)
			if err != nil {
				return err
			}

			return headings.WriteReport(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVarP(&rawURL, "url", "u", defaultURL, "見出しを抽出するページのURL (http/https)")
	return cmd
}
