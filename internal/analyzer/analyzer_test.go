package analyzer

import (
	"encoding/json"
	"sort"
	"testing"

	"econwatch/internal/model"
)

func buildTestDump() *model.Dump {
	return &model.Dump{
		Day:        42.0,
		Year:       2.0,
		Month:      3.0,
		DayOfMonth: 15.0,
		Summary: model.Summary{
			EconomySeed:       12345.0,
			TotalMarketSupply: 1000.0,
			TotalMarketDemand: 800.0,
			TotalMarketVolume: 600.0,
		},
		Markets: []model.Market{
			{ID: 1.0, Name: "Riverton", Type: "local", Goods: map[string]map[string]any{
				"bread": {"supplyOffered": 100.0, "demand": 300.0, "volume": 90.0, "price": 4.0},
				"grain": {"supplyOffered": 400.0, "demand": 100.0, "volume": 80.0, "price": 2.0},
			}},
			{ID: 9.0, Name: "World", Type: "offmap", Goods: map[string]map[string]any{
				"salt": {"supplyOffered": 30.0, "demand": 0.0, "volume": 0.0, "price": 1.0},
			}},
		},
		Counties: []model.County{
			{Facilities: []model.Facility{
				{Type: "bakery", Active: true, Workers: 5.0, LaborRequired: 8.0, Efficiency: 0.7},
				{Type: "farm", Active: true, Workers: 10.0, LaborRequired: 10.0, Efficiency: 0.9},
			}},
		},
	}
}

func TestBuildReport(t *testing.T) {
	t.Parallel()

	r := BuildReport(buildTestDump(), "unity/econ_debug_output_day42.json")

	if r.SimDay != "42" || r.Calendar != "2-3-15" || r.EconomySeed != "12345" {
		t.Fatalf("header mismatch: %+v", r)
	}
	if r.MarketCount != 2 || r.CountyCount != 1 {
		t.Fatalf("counts mismatch: %d markets, %d counties", r.MarketCount, r.CountyCount)
	}
	if r.Global.Supply != 1000 || r.Global.Fill != 0.75 {
		t.Fatalf("global mismatch: %+v", r.Global)
	}
	if len(r.Offmap) != 1 || r.Offmap[0].NonzeroGoods != 1 {
		t.Fatalf("offmap mismatch: %+v", r.Offmap)
	}
	if len(r.Chains) != len(ChainDefs) {
		t.Fatalf("chains = %d, want %d", len(r.Chains), len(ChainDefs))
	}

	// 商品与设施都按 ID 排序
	if !sort.SliceIsSorted(r.Goods, func(i, j int) bool { return r.Goods[i].GoodID < r.Goods[j].GoodID }) {
		t.Fatalf("goods not sorted")
	}
	if !sort.SliceIsSorted(r.Facilities, func(i, j int) bool { return r.Facilities[i].FacilityType < r.Facilities[j].FacilityType }) {
		t.Fatalf("facilities not sorted")
	}
}

func TestBuildReport_Deterministic(t *testing.T) {
	t.Parallel()

	r1 := BuildReport(buildTestDump(), "a.json")
	r2 := BuildReport(buildTestDump(), "a.json")

	b1, err := json.Marshal(r1)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b2, err := json.Marshal(r2)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b1) != string(b2) {
		t.Fatalf("identical dumps must produce identical reports")
	}
}

func TestBuildReport_ChainStages(t *testing.T) {
	t.Parallel()

	r := BuildReport(buildTestDump(), "a.json")

	var food *model.ChainRow
	for i := range r.Chains {
		if r.Chains[i].Name == "Food" {
			food = &r.Chains[i]
			break
		}
	}
	if food == nil {
		t.Fatalf("Food chain missing")
	}
	if food.FinalGood != "bread" {
		t.Fatalf("final good = %s", food.FinalGood)
	}
	if food.Demand != 300 || food.Supply != 100 {
		t.Fatalf("final totals mismatch: %+v", food)
	}
	if len(food.Stages) == 0 {
		t.Fatalf("stages missing")
	}
	last := food.Stages[len(food.Stages)-1]
	if last.Supply != 100 || last.Demand != 300 {
		t.Fatalf("final stage totals mismatch: %+v", last)
	}
}
