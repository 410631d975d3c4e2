package factorial

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrInvalidArgument は、負の整数が渡されたことを示します。
	ErrInvalidArgument = errors.New("n must be a non-negative integer")
	// ErrParse は、入力を整数として解釈できなかったことを示します。
	ErrParse = errors.New("整数として解釈できません")
)

// Factorial は n! を反復で計算します。n < 0 の場合は計算を行わずにエラーを返します。
func Factorial(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidArgument, n)
	}

	result := big.NewInt(1)
	factor := new(big.Int)
	for i := int64(1); i <= n; i++ {
		result.Mul(result, factor.SetInt64(i))
	}
	return result, nil
}

// Parse は1行の入力を10進の整数として解釈します。前後の空白と符号は許容します。
func Parse(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrParse, trimmed, err)
	}
	return n, nil
}

// Format は結果を出力用の1行に整形します。
func Format(n int64, result *big.Int) string {
	return fmt.Sprintf("Factorial of %d is %s", n, result.String())
}
