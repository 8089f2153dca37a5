package scheduler

import (
	"gonum.org/v1/gonum/stat"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// BalanceReport summarizes how evenly a grid spreads contact hours across
// the week. Diagnostic only; it never influences placement.
type BalanceReport struct {
	HoursPerDay map[model.Day]float64
	MeanHours   float64
	StdDevHours float64
	LightestDay model.Day
	BusiestDay  model.Day
}

// DayLoadBalance computes the per-day placed-hours distribution of a grid.
func DayLoadBalance(grid *model.TimeGrid) BalanceReport {
	r := BalanceReport{HoursPerDay: make(map[model.Day]float64, len(model.Days))}
	xs := make([]float64, 0, len(model.Days))
	for _, d := range model.Days {
		h := grid.PlacedHours(d)
		r.HoursPerDay[d] = h
		xs = append(xs, h)
		if h < r.HoursPerDay[r.LightestDay] {
			r.LightestDay = d
		}
		if h > r.HoursPerDay[r.BusiestDay] {
			r.BusiestDay = d
		}
	}
	r.MeanHours = stat.Mean(xs, nil)
	r.StdDevHours = stat.StdDev(xs, nil)
	return r
}
