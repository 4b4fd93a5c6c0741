package domain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchlab/batchctl/internal/domain"
)

func TestNewGasEstimate(t *testing.T) {
	gwei := big.NewInt(1_000_000_000)

	t.Run("total carries the batch discount", func(t *testing.T) {
		perCall := []*big.Int{big.NewInt(50_000), big.NewInt(50_000)}

		est := domain.NewGasEstimate(perCall, gwei)
		assert.Equal(t, "100000", est.Sequential.String())
		assert.Equal(t, "75000", est.Total.String())
		assert.Equal(t, 25, est.SavingsPercent)
	})

	t.Run("discount uses integer arithmetic", func(t *testing.T) {
		// 3 * 21000 = 63000; 63000*25/100 = 15750 exactly, so use an odd sum
		perCall := []*big.Int{big.NewInt(21_001)}

		est := domain.NewGasEstimate(perCall, gwei)
		// 21001*25/100 = 5250 (truncated from 5250.25)
		assert.Equal(t, "15751", est.Total.String())
	})

	t.Run("costs are gas times sampled price", func(t *testing.T) {
		perCall := []*big.Int{big.NewInt(100_000)}

		est := domain.NewGasEstimate(perCall, gwei)
		assert.Equal(t, "100000000000000", est.SequentialCost.String())
		assert.Equal(t, "75000000000000", est.TotalCost.String())
		assert.Equal(t, "25000000000000", est.Savings.String())
		assert.Equal(t, "0.000025", est.SavingsEther)
	})

	t.Run("zero gas price yields zero percent", func(t *testing.T) {
		est := domain.NewGasEstimate([]*big.Int{big.NewInt(21_000)}, big.NewInt(0))
		assert.Equal(t, 0, est.SavingsPercent)
	})
}

func TestFormatWei(t *testing.T) {
	cases := []struct {
		wei  string
		want string
	}{
		{"0", "0"},
		{"1000000000000000000", "1"},
		{"1500000000000000000", "1.5"},
		{"1000000000000000", "0.001"},
		{"1", "0.000000000000000001"},
		{"2500000000000000000000", "2500"},
	}

	for _, tc := range cases {
		wei, ok := new(big.Int).SetString(tc.wei, 10)
		require.True(t, ok)
		assert.Equal(t, tc.want, domain.FormatWei(wei), "wei=%s", tc.wei)
	}
}

func TestParseEther(t *testing.T) {
	t.Run("round trips through FormatWei", func(t *testing.T) {
		for _, amount := range []string{"1", "0.001", "1.5", "0.000000000000000001"} {
			wei, err := domain.ParseEther(amount)
			require.NoError(t, err)
			assert.Equal(t, amount, domain.FormatWei(wei))
		}
	})

	t.Run("fractional-only amounts parse", func(t *testing.T) {
		wei, err := domain.ParseEther(".5")
		require.NoError(t, err)
		assert.Equal(t, "500000000000000000", wei.String())
	})

	t.Run("too many decimal places fails", func(t *testing.T) {
		_, err := domain.ParseEther("0.0000000000000000001")
		assert.Error(t, err)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := domain.ParseEther("1.2.3")
		assert.Error(t, err)

		_, err = domain.ParseEther("abc")
		assert.Error(t, err)
	})

	t.Run("signs are rejected anywhere", func(t *testing.T) {
		// A sign inside the fraction must not fold into the arithmetic
		for _, amount := range []string{"1.-5", "-1", "+1", "1.+5"} {
			_, err := domain.ParseEther(amount)
			assert.Error(t, err, "amount %q", amount)
		}
	})
}
