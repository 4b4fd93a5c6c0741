package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// FallbackCallGas is substituted when a single call's estimation RPC fails.
// Partial estimation is preferred over failing the whole batch.
const FallbackCallGas = 21000

// BatchDiscountPercent models the efficiency of atomic batch execution over
// sequential transactions. It is a fixed heuristic, not measured from the
// call list, and must not be read as a guaranteed on-chain outcome.
const BatchDiscountPercent = 25

// GasEstimate is a point-in-time estimate for a proposed batch. It is
// recomputed on demand and never cached by the estimator.
type GasEstimate struct {
	// Gas units
	PerCall    []*big.Int
	Total      *big.Int
	Sequential *big.Int

	// Costs in wei at the gas price sampled during estimation
	GasPrice       *big.Int
	TotalCost      *big.Int
	SequentialCost *big.Int
	Savings        *big.Int

	SavingsPercent int

	// Decimal renderings in the chain's native unit
	TotalEther      string
	SequentialEther string
	SavingsEther    string
}

// NewGasEstimate derives the aggregate estimate from per-call gas figures and
// a sampled gas price.
func NewGasEstimate(perCall []*big.Int, gasPrice *big.Int) *GasEstimate {
	sequential := new(big.Int)
	for _, gas := range perCall {
		sequential.Add(sequential, gas)
	}

	// total = sequential - sequential*25/100, in integer arithmetic
	discount := new(big.Int).Mul(sequential, big.NewInt(BatchDiscountPercent))
	discount.Div(discount, big.NewInt(100))
	total := new(big.Int).Sub(sequential, discount)

	totalCost := new(big.Int).Mul(total, gasPrice)
	sequentialCost := new(big.Int).Mul(sequential, gasPrice)
	savings := new(big.Int).Sub(sequentialCost, totalCost)

	return &GasEstimate{
		PerCall:         perCall,
		Total:           total,
		Sequential:      sequential,
		GasPrice:        new(big.Int).Set(gasPrice),
		TotalCost:       totalCost,
		SequentialCost:  sequentialCost,
		Savings:         savings,
		SavingsPercent:  roundedPercent(savings, sequentialCost),
		TotalEther:      FormatWei(totalCost),
		SequentialEther: FormatWei(sequentialCost),
		SavingsEther:    FormatWei(savings),
	}
}

// roundedPercent computes round(part*100/whole) without leaving integers.
func roundedPercent(part, whole *big.Int) int {
	if whole.Sign() == 0 {
		return 0
	}
	scaled := new(big.Int).Mul(part, big.NewInt(100))
	half := new(big.Int).Div(whole, big.NewInt(2))
	scaled.Add(scaled, half)
	return int(new(big.Int).Div(scaled, whole).Int64())
}

// FormatWei renders a wei amount as a decimal string in ether, with
// insignificant trailing zeros trimmed.
func FormatWei(wei *big.Int) string {
	if wei == nil || wei.Sign() == 0 {
		return "0"
	}

	sign := ""
	abs := new(big.Int).Abs(wei)
	if wei.Sign() < 0 {
		sign = "-"
	}

	ether := new(big.Int)
	frac := new(big.Int)
	ether.QuoRem(abs, big.NewInt(params.Ether), frac)

	if frac.Sign() == 0 {
		return sign + ether.String()
	}

	// Pad the fractional part to 18 digits, then trim trailing zeros
	digits := strings.TrimRight(padLeft(frac.String(), 18), "0")
	return sign + ether.String() + "." + digits
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// ParseEther converts a decimal ether amount ("0.001", "2") to wei.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	// Both parts must be bare digit runs. SetString alone is too permissive:
	// it accepts a sign, so "1.-5" would fold the fraction into a subtraction.
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("invalid ether amount %q", s)
	}
	if len(frac) > 18 {
		return nil, fmt.Errorf("amount %q has more than 18 decimal places", s)
	}

	wei, _ := new(big.Int).SetString(whole, 10)
	wei.Mul(wei, big.NewInt(params.Ether))

	if frac != "" {
		fracWei, _ := new(big.Int).SetString(padRight(frac, 18), 10)
		wei.Add(wei, fracWei)
	}

	return wei, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("0", width-len(s))
}
