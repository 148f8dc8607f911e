// core/algo/format.go
package algo

import (
	"math/big"
	"strconv"
	"strings"
)

// sciNotation renders an exact integer accumulator as "d.dd * 10 ^ e"
// (mantissa rounded half-up to two places). Used by the fraction-accumulator
// engines to describe their numerator/denominator growth alongside the
// memory estimate.
func sciNotation(x *big.Int) string {
	sign := ""
	if x.Sign() < 0 {
		sign = "-"
	}
	s := new(big.Int).Abs(x).String()
	exp := len(s) - 1

	// Round the mantissa to three significant digits, half-up.
	mant := s
	if len(mant) > 3 {
		carry := mant[3] >= '5'
		mant = mant[:3]
		if carry {
			m := new(big.Int)
			m.SetString(mant, 10)
			m.Add(m, big.NewInt(1))
			mant = m.String()
			if len(mant) > 3 { // 999 + 1
				mant = mant[:3]
				exp++
			}
		}
	}
	for len(mant) < 3 {
		mant += "0"
	}
	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte(mant[0])
	b.WriteByte('.')
	b.WriteString(mant[1:])
	b.WriteString(" * 10 ^ ")
	b.WriteString(strconv.Itoa(exp))
	return b.String()
}

// truncFraction renders num/den truncated (round-down) to scale digits after
// the point. Both operands must be positive.
func truncFraction(num, den *big.Int, scale int) string {
	if scale <= 0 {
		return new(big.Int).Quo(num, den).String()
	}
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	q := new(big.Int).Quo(new(big.Int).Mul(num, p), den)
	s := q.String()
	if len(s) <= scale {
		s = strings.Repeat("0", scale-len(s)+1) + s
	}
	return s[:len(s)-scale] + "." + s[len(s)-scale:]
}
