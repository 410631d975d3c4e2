package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-cli-samples/internal/logging"
)

const appName = "go-cli-samples"

// AppFlags はこのアプリケーション固有の永続フラグを保持します。
type AppFlags struct {
	Verbose bool // --verbose デバッグログを出力する
}

// app はサブコマンド間で共有する状態です。PersistentPreRunE で初期化されます。
type app struct {
	flags  AppFlags
	logger *zap.Logger
}

func newApp() *app {
	return &app{logger: zap.NewNop()}
}

// newRootCmd はルートコマンドとサブコマンド一式を組み立てます。
func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "見出し抽出と階乗計算のCLIツール",
		Long:  `Webページの <h2> 見出しの抽出（headings）と、非負整数の階乗計算（factorial）を実行します。`,
		// 実行時エラーで使い方を表示しない
		SilenceUsage:      true,
		PersistentPreRunE: a.initPreRunE,
	}

	addAppPersistentFlags(rootCmd, &a.flags)
	rootCmd.AddCommand(
		newHeadingsCmd(a),
		newFactorialCmd(a),
	)
	return rootCmd
}

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command, flags *AppFlags) {
	rootCmd.PersistentFlags().BoolVarP(
		&flags.Verbose,
		"verbose",
		"v",
		false,
		"デバッグログを標準エラー出力に表示します",
	)
}

// initPreRunE はコマンドの標準エラー出力に書き出すロガーを初期化します。
func (a *app) initPreRunE(cmd *cobra.Command, args []string) error {
	a.logger = logging.New(cmd.ErrOrStderr(), a.flags.Verbose).Named(cmd.Name())
	a.logger.Debug("ロガーを初期化しました", zap.Bool("verbose", a.flags.Verbose))
	return nil
}

// execute はコマンドを実行し、成否にかかわらずロガーをフラッシュします。
func (a *app) execute(rootCmd *cobra.Command) error {
	defer func() { _ = a.logger.Sync() }()
	return rootCmd.Execute()
}

// Execute は rootCmd を実行します。エラーは cobra が標準エラー出力に表示します。
func Execute() error {
	a := newApp()
	return a.execute(a.newRootCmd())
}
