package analyzer

import (
	"econwatch/internal/model"
)

// FacilityMetrics 单个设施类型跨所有县的累计指标
type FacilityMetrics struct {
	Count         int
	ActiveCount   int
	Workers       float64
	LaborRequired float64
	EfficiencySum float64
	LossDaysSum   float64
	WageDebtSum   float64
}

// ActiveRatio 活跃实例占比，无实例时为 0
func (f *FacilityMetrics) ActiveRatio() float64 {
	if f.Count <= 0 {
		return 0
	}
	return float64(f.ActiveCount) / float64(f.Count)
}

// LaborFill 实际用工对需求用工的比例，需求不为正时为 0
func (f *FacilityMetrics) LaborFill() float64 {
	if f.LaborRequired <= 0 {
		return 0
	}
	return f.Workers / f.LaborRequired
}

// AvgEfficiency 实例平均效率，无实例时为 0
func (f *FacilityMetrics) AvgEfficiency() float64 {
	if f.Count <= 0 {
		return 0
	}
	return f.EfficiencySum / float64(f.Count)
}

// AggregateFacilities 把所有县的设施实例折叠成每类型一份累计指标
// type 为空的记录无法归类，整条跳过。
func AggregateFacilities(counties []model.County) map[string]*FacilityMetrics {
	facilities := make(map[string]*FacilityMetrics)
	for _, county := range counties {
		for _, entry := range county.Facilities {
			if entry.Type == "" {
				continue
			}
			fm := facilities[entry.Type]
			if fm == nil {
				fm = &FacilityMetrics{}
				facilities[entry.Type] = fm
			}

			fm.Count++
			if model.Bool(entry.Active) {
				fm.ActiveCount++
			}
			fm.Workers += model.Float(entry.Workers)
			fm.LaborRequired += model.Float(entry.LaborRequired)
			fm.EfficiencySum += model.Float(entry.Efficiency)
			fm.LossDaysSum += model.Float(entry.ConsecutiveLossDays)
			fm.WageDebtSum += model.Float(entry.WageDebtDays)
		}
	}
	return facilities
}
