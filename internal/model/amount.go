package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// 金额列是 decimal(12,2)：10 位整数 + 2 位小数
const (
	AmountScale         = 2
	amountIntegerDigits = 10
	// 超过这个小数位数的输入直接拒绝，Round 之前不做任何 rescale
	amountMaxFraction = 20
)

// ErrAmountOutOfRange 金额超出数据库列能保存的范围
var ErrAmountOutOfRange = errors.New("amount out of range")

// MaxAmount 9999999999.99
var MaxAmount = decimal.New(999999999999, -AmountScale)

// NormalizeAmount 检查范围并四舍五入到分，返回值就是落库后的值
// 只看位数和指数做第一道判断，1e900000000 这种值不会被展开
func NormalizeAmount(d decimal.Decimal) (decimal.Decimal, error) {
	exp := int64(d.Exponent())
	digits := int64(d.NumDigits())
	if exp < -amountMaxFraction || digits+exp > amountIntegerDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: %d digits, exponent %d", ErrAmountOutOfRange, digits, exp)
	}

	rounded := d.Round(AmountScale)
	if rounded.Abs().GreaterThan(MaxAmount) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrAmountOutOfRange, rounded.String())
	}
	return rounded, nil
}
