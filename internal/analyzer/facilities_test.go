package analyzer

import (
	"math"
	"testing"

	"econwatch/internal/model"
)

func TestAggregateFacilities_SkipsMissingType(t *testing.T) {
	t.Parallel()

	counties := []model.County{
		{Facilities: []model.Facility{
			{Type: "", Active: true, Workers: 10.0},
			{Type: "mill", Active: true, Workers: 5.0, LaborRequired: 8.0},
		}},
	}

	facilities := AggregateFacilities(counties)
	if len(facilities) != 1 {
		t.Fatalf("untyped record must be skipped, got %d types", len(facilities))
	}
	fm := facilities["mill"]
	if fm == nil || fm.Count != 1 || fm.ActiveCount != 1 {
		t.Fatalf("unexpected mill metrics: %+v", fm)
	}
}

func TestAggregateFacilities_AccumulatesAcrossCounties(t *testing.T) {
	t.Parallel()

	counties := []model.County{
		{Facilities: []model.Facility{
			{Type: "bakery", Active: true, Workers: 4.0, LaborRequired: 5.0, Efficiency: 0.8, ConsecutiveLossDays: 2.0, WageDebtDays: 1.0},
		}},
		{Facilities: []model.Facility{
			{Type: "bakery", Active: false, Workers: 1.0, LaborRequired: 5.0, Efficiency: 0.4, ConsecutiveLossDays: 10.0, WageDebtDays: 0.0},
		}},
	}

	fm := AggregateFacilities(counties)["bakery"]
	if fm.Count != 2 || fm.ActiveCount != 1 {
		t.Fatalf("unexpected counts: %d/%d", fm.Count, fm.ActiveCount)
	}
	if fm.Workers != 5 || fm.LaborRequired != 10 {
		t.Fatalf("unexpected labor sums: %v/%v", fm.Workers, fm.LaborRequired)
	}
	if math.Abs(fm.EfficiencySum-1.2) > 1e-12 || fm.LossDaysSum != 12 || fm.WageDebtSum != 1 {
		t.Fatalf("unexpected accumulators: %v %v %v", fm.EfficiencySum, fm.LossDaysSum, fm.WageDebtSum)
	}

	if fm.ActiveRatio() != 0.5 {
		t.Fatalf("unexpected active ratio: %v", fm.ActiveRatio())
	}
	if fm.LaborFill() != 0.5 {
		t.Fatalf("unexpected labor fill: %v", fm.LaborFill())
	}
	if math.Abs(fm.AvgEfficiency()-0.6) > 1e-12 {
		t.Fatalf("unexpected avg efficiency: %v", fm.AvgEfficiency())
	}
}

func TestFacilityMetrics_ZeroDenominators(t *testing.T) {
	t.Parallel()

	fm := &FacilityMetrics{}
	if fm.ActiveRatio() != 0 || fm.LaborFill() != 0 || fm.AvgEfficiency() != 0 {
		t.Fatalf("zero-count metrics must derive to 0")
	}

	fm = &FacilityMetrics{Count: 3, Workers: 9}
	if fm.LaborFill() != 0 {
		t.Fatalf("labor fill must be 0 when labor_required <= 0")
	}
}

func TestAggregateFacilities_ActiveCoercion(t *testing.T) {
	t.Parallel()

	counties := []model.County{
		{Facilities: []model.Facility{
			{Type: "smithy", Active: 1.0},
			{Type: "smithy", Active: "true"},
			{Type: "smithy", Active: 0.0},
			{Type: "smithy", Active: nil},
		}},
	}

	fm := AggregateFacilities(counties)["smithy"]
	if fm.Count != 4 || fm.ActiveCount != 2 {
		t.Fatalf("unexpected active coercion: %d/%d", fm.ActiveCount, fm.Count)
	}
}

func TestWeightedFacilityHealth(t *testing.T) {
	t.Parallel()

	facilities := map[string]*FacilityMetrics{
		// active_ratio 1.0, labor_fill 1.0, 权重 1
		"mill": {Count: 1, ActiveCount: 1, Workers: 5, LaborRequired: 5},
		// active_ratio 0.25, labor_fill 0.5, 权重 4
		"bakery": {Count: 4, ActiveCount: 1, Workers: 10, LaborRequired: 20},
		// 无实例的类型不参与
		"ghost": {},
	}

	active, fill, count := WeightedFacilityHealth(facilities, []string{"mill", "bakery", "ghost", "unknown"})
	if count != 5 {
		t.Fatalf("unexpected weighted count: %d", count)
	}
	if math.Abs(active-(1.0*1+0.25*4)/5) > 1e-12 {
		t.Fatalf("unexpected weighted active: %v", active)
	}
	if math.Abs(fill-(1.0*1+0.5*4)/5) > 1e-12 {
		t.Fatalf("unexpected weighted fill: %v", fill)
	}
}

func TestWeightedFacilityHealth_AbsentIsZeroTriple(t *testing.T) {
	t.Parallel()

	active, fill, count := WeightedFacilityHealth(map[string]*FacilityMetrics{}, []string{"a", "b"})
	if active != 0 || fill != 0 || count != 0 {
		t.Fatalf("no qualifying types must yield (0,0,0): %v %v %d", active, fill, count)
	}
}
