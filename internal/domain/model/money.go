package model

// ApplyDiscountPercent はセント単位の金額にパーセント割引を適用する。
// 端数（0.5セント）は偶数丸め。pctは0〜100の整数。
func ApplyDiscountPercent(amount int64, pct int) int64 {
	if pct <= 0 {
		return amount
	}
	if pct >= 100 {
		return 0
	}

	num := amount * int64(100-pct)
	q := num / 100
	r := num % 100

	switch {
	case r > 50:
		return q + 1
	case r < 50:
		return q
	default:
		// ちょうど0.5セントは偶数側へ
		if q%2 != 0 {
			return q + 1
		}
		return q
	}
}
