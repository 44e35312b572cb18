package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

//Add takes two uint64 amounts and sums them x + y and returns the result
func Add(x, y uint64) uint64 {
	X, Y := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	return uint64(X.Add(Y).IntPart())
}

//Sub takes two uint64 amounts and subtracts them x - y and returns the result
func Sub(x, y uint64) uint64 {
	X, Y := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	return uint64(X.Sub(Y).IntPart())
}

//Sum takes a list of uint64 amounts and returns their total
func Sum(amounts []uint64) uint64 {
	total := decimal.Zero
	for _, v := range amounts {
		total = total.Add(decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0))
	}
	return uint64(total.IntPart())
}
