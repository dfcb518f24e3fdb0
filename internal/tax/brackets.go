package tax

import (
	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
)

// Year is the tax year the bracket tables describe.
const Year = 2024

type bracket struct {
	upTo decimal.Decimal // zero on the top bracket
	rate decimal.Decimal // percent
}

type schedule struct {
	brackets            []bracket
	basicPersonalAmount decimal.Decimal
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// sched builds a schedule from alternating threshold/rate pairs, ending with the top rate.
func sched(bpa string, pairs ...string) schedule {
	s := schedule{basicPersonalAmount: d(bpa)}
	for i := 0; i+1 < len(pairs); i += 2 {
		s.brackets = append(s.brackets, bracket{upTo: d(pairs[i]), rate: d(pairs[i+1])})
	}
	s.brackets = append(s.brackets, bracket{rate: d(pairs[len(pairs)-1])})
	return s
}

var federal = sched("15705",
	"55867", "15", "111733", "20.5", "173205", "26", "246752", "29", "33")

// quebecAbatement is the federal tax reduction for Quebec residents, in percent.
var quebecAbatement = d("16.5")

var provincial = map[model.Province]schedule{
	model.ProvinceON: sched("12399", "51446", "5.05", "102894", "9.15", "150000", "11.16", "220000", "12.16", "13.16"),
	model.ProvinceBC: sched("12580", "47937", "5.06", "95875", "7.7", "110076", "10.5", "133664", "12.29", "181232", "14.7", "252752", "16.8", "20.5"),
	model.ProvinceAB: sched("21885", "148269", "10", "177922", "12", "237230", "13", "355845", "14", "15"),
	model.ProvinceSK: sched("18491", "52057", "10.5", "148734", "12.5", "14.5"),
	model.ProvinceMB: sched("15780", "47000", "10.8", "100000", "12.75", "17.4"),
	model.ProvinceQC: sched("18056", "51780", "14", "103545", "19", "126000", "24", "25.75"),
	model.ProvinceNB: sched("13044", "49958", "9.4", "99916", "14", "185064", "16", "19.5"),
	model.ProvinceNS: sched("8744", "29590", "8.79", "59180", "14.95", "93000", "16.67", "150000", "17.5", "21"),
	model.ProvincePE: sched("13500", "32656", "9.65", "64313", "13.63", "105000", "16.65", "140000", "18", "18.75"),
	model.ProvinceNL: sched("10818", "43198", "8.7", "86395", "14.5", "154244", "15.8", "215943", "17.8", "275870", "19.8", "551739", "20.8", "1103478", "21.3", "21.8"),
	model.ProvinceYT: sched("15705", "55867", "6.4", "111733", "9", "173205", "10.9", "500000", "12.8", "15"),
	model.ProvinceNT: sched("17373", "50597", "5.9", "101198", "8.6", "164525", "12.2", "14.05"),
	model.ProvinceNU: sched("18767", "53268", "4", "106537", "7", "173205", "9", "11.5"),
}

var hundred = decimal.NewFromInt(100)

// gross applies the brackets to income without credits.
func (s schedule) gross(income decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	lower := decimal.Zero
	for _, b := range s.brackets {
		if !income.GreaterThan(lower) {
			break
		}
		top := income
		if !b.upTo.IsZero() && income.GreaterThan(b.upTo) {
			top = b.upTo
		}
		total = total.Add(top.Sub(lower).Mul(b.rate).Div(hundred))
		if b.upTo.IsZero() {
			break
		}
		lower = b.upTo
	}
	return total
}

// tax applies the brackets and the basic personal amount credit, floored at zero.
func (s schedule) tax(income decimal.Decimal) decimal.Decimal {
	credit := s.basicPersonalAmount.Mul(s.brackets[0].rate).Div(hundred)
	t := s.gross(income).Sub(credit)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}

// marginal returns the rate that applies to the next dollar earned.
func (s schedule) marginal(income decimal.Decimal) decimal.Decimal {
	if !income.GreaterThan(s.basicPersonalAmount) {
		return decimal.Zero
	}
	for _, b := range s.brackets {
		if b.upTo.IsZero() || income.LessThan(b.upTo) {
			return b.rate
		}
	}
	return s.brackets[len(s.brackets)-1].rate
}
