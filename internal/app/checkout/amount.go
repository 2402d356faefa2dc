package checkout

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var (
	hundred = big.NewRat(100, 1)
	half    = big.NewRat(1, 2)
)

// ToMinorUnits converts a major-unit amount (e.g. pounds) to integer minor
// units, rounding half away from zero. The rounding is done on the shortest
// decimal form of the value, so 10.005 becomes 1001 rather than the 1000 that
// binary float multiplication would give.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("amount %v is not a finite number", amount)
	}

	r, ok := new(big.Rat).SetString(strconv.FormatFloat(amount, 'f', -1, 64))
	if !ok {
		return 0, fmt.Errorf("amount %v cannot be represented as a decimal", amount)
	}
	r.Mul(r, hundred)

	neg := r.Sign() < 0
	r.Abs(r)
	r.Add(r, half)

	minor := new(big.Int).Quo(r.Num(), r.Denom())
	if !minor.IsInt64() {
		return 0, fmt.Errorf("amount %v is out of range", amount)
	}

	if neg {
		return -minor.Int64(), nil
	}

	return minor.Int64(), nil
}

// ToMajorUnits is the inverse used when reporting processor totals.
func ToMajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
