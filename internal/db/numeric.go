package db

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// NumericFromBigInt converts a non-nil big.Int into a NUMERIC column value.
// Ledger amounts are whole wei, so the exponent is always zero.
func NumericFromBigInt(v *big.Int) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   new(big.Int).Set(v),
		Exp:   0,
		Valid: true,
	}
}

// NumericToBigInt converts a NUMERIC column value back into a big.Int.
// The ledger only ever stores whole integers; a fractional value indicates
// a corrupted row and is rejected.
func NumericToBigInt(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid || n.Int == nil {
		return nil, fmt.Errorf("numeric value is null")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("numeric value is not finite")
	}

	v := new(big.Int).Set(n.Int)
	switch {
	case n.Exp == 0:
		return v, nil
	case n.Exp > 0:
		mul := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil)
		return v.Mul(v, mul), nil
	default:
		return nil, fmt.Errorf("numeric value has fractional digits (exp=%d)", n.Exp)
	}
}
