package aggregator

import (
	"strconv"

	"Diversonal/internal/domain/models"
	"Diversonal/pkg/util"
)

const (
	PeriodYoY = "YoY"
	PeriodQoQ = "QoQ"
)

// ClassifyGrowthPeriod labels the gap between two statements: YoY for 10-14 months,
// QoQ for 2-4 months, otherwise "<N>M".
func ClassifyGrowthPeriod(monthsDiff int) string {
	switch {
	case monthsDiff >= 10 && monthsDiff <= 14:
		return PeriodYoY
	case monthsDiff >= 2 && monthsDiff <= 4:
		return PeriodQoQ
	default:
		return strconv.Itoa(monthsDiff) + "M"
	}
}

// RevenueGrowth returns the percentage revenue change from previous to latest and the
// period label. growth is nil when previous revenue is zero; period is nil when either
// date cannot be parsed.
func RevenueGrowth(latest, previous models.IncomeStatement) (growth *float64, period *string) {
	if previous.Revenue != 0 {
		g := (latest.Revenue - previous.Revenue) / previous.Revenue * 100
		growth = &g
	}

	lt, ok1 := util.ParseTime(latest.Date)
	pt, ok2 := util.ParseTime(previous.Date)
	if ok1 && ok2 {
		p := ClassifyGrowthPeriod(util.MonthsBetween(lt, pt))
		period = &p
	}
	return growth, period
}
