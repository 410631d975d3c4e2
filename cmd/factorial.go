package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shouni/go-cli-samples/pkg/factorial"
)

const promptText = "Enter a non-negative integer: "

// readLine は入力から1行を読み取ります。何も読めなかった場合は ErrParse を返します。
func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("標準入力の読み取りエラー: %w", err)
		}
		return "", fmt.Errorf("%w: 入力がありません", factorial.ErrParse)
	}
	return scanner.Text(), nil
}

func newFactorialCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "factorial [n]",
		Short: "非負整数の階乗を計算します",
		Long:  `引数の整数、または標準入力から読み取った1行の整数の階乗を任意精度で計算して表示します。負数は "--" の後に指定してください。`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var line string
			if len(args) == 1 {
				line = args[0]
			} else {
				fmt.Fprint(cmd.OutOrStdout(), promptText)
				input, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				line = input
			}

			n, err := factorial.Parse(line)
			if err != nil {
				return err
			}

			result, err := factorial.Factorial(n)
			if err != nil {
				return err
			}
			a.logger.Debug("階乗を計算しました", zap.Int64("n", n), zap.Int("bits", result.BitLen()))

			fmt.Fprintln(cmd.OutOrStdout(), factorial.Format(n, result))
			return nil
		},
	}
}
