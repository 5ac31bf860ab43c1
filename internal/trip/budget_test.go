package trip

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_GoaScenario(t *testing.T) {
	b := FixedRatioSplitter{}.Split(FromMajor(15000))

	require.Len(t, b.Items, 4)
	want := []BudgetItem{
		{CategoryAccommodation, FromMajor(5250)},
		{CategoryFood, FromMajor(3750)},
		{CategoryTransport, FromMajor(3000)},
		{CategoryActivities, FromMajor(3000)},
	}
	assert.Equal(t, want, b.Items)
	assert.Equal(t, FromMajor(15000), b.Total())
	assert.Equal(t, Money(0), b.Remaining(FromMajor(15000)))
}

func TestSplit_SumsExactly(t *testing.T) {
	totals := []Money{0, 1, 2, 3, 7, 99, 101, 333, 999, 100001, 123457, FromMajor(1000), FromMajor(987654)}
	for i := Money(0); i < 500; i++ {
		totals = append(totals, i*37+11)
	}

	for _, total := range totals {
		b := FixedRatioSplitter{}.Split(total)

		require.Len(t, b.Items, 4)
		assert.Equal(t, total, b.Total(), "total %d", total)
		for _, it := range b.Items {
			assert.GreaterOrEqual(t, int64(it.Amount), int64(0))
		}
	}
}

func TestSplit_CategoryOrderAndLookup(t *testing.T) {
	b := FixedRatioSplitter{}.Split(FromMajor(2000))

	got := make([]Category, 0, len(b.Items))
	for _, it := range b.Items {
		got = append(got, it.Category)
	}
	assert.Equal(t, []Category{CategoryAccommodation, CategoryFood, CategoryTransport, CategoryActivities}, got)

	food, ok := b.Amount(CategoryFood)
	assert.True(t, ok)
	assert.Equal(t, FromMajor(500), food)

	_, ok = b.Amount("Shopping")
	assert.False(t, ok)
}

func TestSplit_RemainderGoesToLargestFraction(t *testing.T) {
	// 3 minor units: 1.05 / 0.75 / 0.60 / 0.60 -> floors 1/0/0/0, leftover 2.
	b := FixedRatioSplitter{}.Split(3)

	assert.Equal(t, []BudgetItem{
		{CategoryAccommodation, 1},
		{CategoryFood, 1},
		{CategoryTransport, 1},
		{CategoryActivities, 0},
	}, b.Items)
}

func TestSplit_LargeTotals(t *testing.T) {
	totals := []Money{
		FromMajor(MaxBudget),
		FromMajor(30_000_000_000_000),
		Money(math.MaxInt64 / 10000 * 3),
		Money(math.MaxInt64 - 1),
		Money(math.MaxInt64),
	}

	for _, total := range totals {
		done := make(chan BudgetBreakdown, 1)
		go func() { done <- FixedRatioSplitter{}.Split(total) }()

		select {
		case b := <-done:
			require.Len(t, b.Items, 4)
			assert.Equal(t, total, b.Total(), "total %d", total)
			for _, it := range b.Items {
				assert.GreaterOrEqual(t, int64(it.Amount), int64(0), "total %d", total)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Split(%d) did not return", total)
		}
	}
}

func TestSplit_InvalidRatiosYieldZeros(t *testing.T) {
	s := FixedRatioSplitter{Ratios: []Ratio{
		{CategoryFood, 12000},
		{CategoryTransport, -2000},
	}}
	b := s.Split(FromMajor(1000))
	assert.Equal(t, Money(0), b.Total())
	assert.Len(t, b.Items, 2)
}

func TestFromMajor_Saturates(t *testing.T) {
	assert.Equal(t, Money(math.MaxInt64), FromMajor(1e17))
	assert.Equal(t, Money(math.MinInt64), FromMajor(-1e17))
	assert.Equal(t, Money(100_000_000_000_000), FromMajor(MaxBudget))
}

func TestSplit_NegativeTotal(t *testing.T) {
	b := FixedRatioSplitter{}.Split(-500)
	assert.Equal(t, Money(0), b.Total())
	assert.Len(t, b.Items, 4)
}

func TestMoney_Format(t *testing.T) {
	assert.Equal(t, "5250.00", FromMajor(5250).String())
	assert.Equal(t, "0.05", Money(5).String())

	data, err := Money(525050).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "5250.5", string(data))
}

func TestMoney_FormatCurrency(t *testing.T) {
	assert.Equal(t, "₹15000", FromMajor(15000).Format("INR"))
	assert.Equal(t, "$2000", FromMajor(2000).Format("usd"))
	assert.Equal(t, "CHF 1000", FromMajor(1000).Format("CHF"))
	assert.Equal(t, "₹10.50", Money(1050).Format("INR"))
}
