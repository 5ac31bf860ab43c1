package trip

import "sort"

type Category string

const (
	CategoryAccommodation Category = "Accommodation"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryActivities    Category = "Activities"
)

// Ratio is a category share in basis points (1/10000).
type Ratio struct {
	Category    Category
	BasisPoints int64
}

var DefaultRatios = []Ratio{
	{CategoryAccommodation, 3500},
	{CategoryFood, 2500},
	{CategoryTransport, 2000},
	{CategoryActivities, 2000},
}

type BudgetItem struct {
	Category Category `json:"category"`
	Amount   Money    `json:"amount"`
}

type BudgetBreakdown struct {
	Items []BudgetItem `json:"items"`
}

func (b BudgetBreakdown) Total() Money {
	var sum Money
	for _, it := range b.Items {
		sum += it.Amount
	}
	return sum
}

// Remaining is what is left of budget after the breakdown is spent.
func (b BudgetBreakdown) Remaining(budget Money) Money {
	return budget - b.Total()
}

func (b BudgetBreakdown) Amount(c Category) (Money, bool) {
	for _, it := range b.Items {
		if it.Category == c {
			return it.Amount, true
		}
	}
	return 0, false
}

// FixedRatioSplitter partitions a budget by fixed ratios. The zero value uses
// DefaultRatios.
type FixedRatioSplitter struct {
	Ratios []Ratio
}

// Split floors every share to a minor unit and hands the leftover minor units
// to the largest fractional remainders, so the items always sum to total.
// Negative totals and ratios that are negative or do not sum to 10000 yield
// zero amounts.
func (s FixedRatioSplitter) Split(total Money) BudgetBreakdown {
	ratios := s.Ratios
	if len(ratios) == 0 {
		ratios = DefaultRatios
	}

	items := make([]BudgetItem, len(ratios))
	var bpSum int64
	valid := true
	for i, r := range ratios {
		items[i].Category = r.Category
		bpSum += r.BasisPoints
		if r.BasisPoints < 0 {
			valid = false
		}
	}
	if total <= 0 || !valid || bpSum != 10000 {
		return BudgetBreakdown{Items: items}
	}

	// total*bp/10000 without forming total*bp: with total = q*10000 + r the
	// share is q*bp + r*bp/10000, and q*bp never exceeds total.
	q, r := int64(total)/10000, int64(total)%10000
	remainders := make([]int64, len(ratios))
	var allocated int64
	for i, ratio := range ratios {
		share := q*ratio.BasisPoints + r*ratio.BasisPoints/10000
		items[i].Amount = Money(share)
		remainders[i] = r * ratio.BasisPoints % 10000
		allocated += share
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	// The remainders sum to less than len(items)*10000, so at most one extra
	// minor unit goes to each item.
	leftover := int64(total) - allocated
	for i := 0; i < len(order) && leftover > 0; i++ {
		items[order[i]].Amount++
		leftover--
	}

	return BudgetBreakdown{Items: items}
}
