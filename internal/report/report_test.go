package report

import (
	"math"
	"strings"
	"testing"

	"econwatch/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		DumpPath:    "unity/econ_debug_output_day42.json",
		SimDay:      "42",
		Calendar:    "Y2 M3 D15",
		EconomySeed: "12345",
		MarketCount: 6,
		CountyCount: 3,
		Global: model.GlobalRow{
			Supply: 1000, Demand: 800, Volume: 600,
			Fill: 0.75, DemandOverSupply: 0.8,
			PendingOrders: 12, ConsignmentLots: 4,
		},
		Offmap: []model.OffmapRow{
			{ID: "9", Name: "World", PendingOrders: 2, ConsignmentLots: 1, NonzeroGoods: 5},
		},
		Goods: []model.GoodRow{
			{
				GoodID: "bread", Demand: 300, Supply: 100, Volume: 90,
				ActiveMarkets: 5, ShortMarkets: 4,
				DemandOverSupply: 3, FillRatio: 0.3, ShortFraction: 0.8, PriceCV: 0.1,
			},
			{
				GoodID: "stone", Supply: 500, Demand: 100, Volume: 80,
				ActiveMarkets: 4, ExcessMarkets: 3,
				SupplyOverDemand: 5, DemandOverSupply: 0.2, FillRatio: 0.8, ExcessFraction: 0.75,
			},
			{
				GoodID: "salt", Demand: 200, Supply: 190, Volume: 150,
				ActiveMarkets: 4, ShortMarkets: 2, ExcessMarkets: 2,
				DemandOverSupply: 1.05, FillRatio: 0.75,
				ShortFraction: 0.5, ExcessFraction: 0.5, PriceCV: 0.9,
			},
			// 聚合量低于信号门槛，不该出现在任何清单里
			{
				GoodID: "dye", Demand: 10, Supply: 1,
				ActiveMarkets: 2, ShortMarkets: 2,
				DemandOverSupply: 10, ShortFraction: 1.0,
			},
		},
		Chains: []model.ChainRow{
			{
				Name: "Food", FinalGood: "bread", Class: "SYSTEMIC_SHORTAGE",
				Rationale: "Final good shortage appears in most active markets, indicating broad under-supply not isolated to one market.",
				Demand:    300, Supply: 100, DemandOverSupply: 3, FillRatio: 0.3,
				ShortFraction: 0.8,
				Stages: []model.StageRow{
					{Label: "Grain", Goods: "grain", Supply: 400, Demand: 100, Volume: 90, FacilityCount: 10, ActiveRatio: 0.9, LaborFill: 0.8},
					{Label: "Bread", Goods: "bread", Supply: 100, Demand: 300, Volume: 90, FacilityCount: 6, ActiveRatio: 0.5, LaborFill: 0.6},
				},
			},
		},
	}
}

func TestRender_Sections(t *testing.T) {
	t.Parallel()

	out := Render(sampleReport(), DefaultOptions())
	for _, section := range []string{
		"== Econ Chain Analysis ==",
		"== Global System Signals ==",
		"== Off-map Markets ==",
		"== Broad Shortage Goods (Systemic) ==",
		"== Broad Oversupply Goods (Systemic) ==",
		"== Localized / Mixed Goods ==",
		"== Chain Diagnoses ==",
		"== Chain Details ==",
	} {
		if !strings.Contains(out, section) {
			t.Fatalf("missing section %q in:\n%s", section, out)
		}
	}
}

func TestRender_HeaderAndGlobal(t *testing.T) {
	t.Parallel()

	out := Render(sampleReport(), DefaultOptions())
	if !strings.Contains(out, "sim_day=42 calendar=Y2 M3 D15 economySeed=12345") {
		t.Fatalf("header line mismatch:\n%s", out)
	}
	if !strings.Contains(out, "counties=3 markets=6") {
		t.Fatalf("count line mismatch:\n%s", out)
	}
	if !strings.Contains(out, "supply=1000.0 demand=800.0 volume=600.0 fill=0.750 demand/supply=0.80 pendingOrders=12 lots=4") {
		t.Fatalf("global line mismatch:\n%s", out)
	}
}

func TestRender_GoodLists(t *testing.T) {
	t.Parallel()

	out := Render(sampleReport(), DefaultOptions())

	shortage := sectionOf(t, out, "== Broad Shortage Goods (Systemic) ==")
	if !strings.Contains(shortage, "bread") {
		t.Fatalf("bread missing from shortage list:\n%s", shortage)
	}
	if strings.Contains(shortage, "dye") {
		t.Fatalf("low-volume good must stay below the signal floor:\n%s", shortage)
	}

	oversupply := sectionOf(t, out, "== Broad Oversupply Goods (Systemic) ==")
	if !strings.Contains(oversupply, "stone") {
		t.Fatalf("stone missing from oversupply list:\n%s", oversupply)
	}

	localized := sectionOf(t, out, "== Localized / Mixed Goods ==")
	if !strings.Contains(localized, "salt") {
		t.Fatalf("salt missing from localized list:\n%s", localized)
	}
}

func TestRender_TopNLimit(t *testing.T) {
	t.Parallel()

	r := &model.Report{}
	for _, id := range []string{"a", "b", "c"} {
		r.Goods = append(r.Goods, model.GoodRow{
			GoodID: id, Demand: 500, Supply: 100,
			ActiveMarkets: 4, ShortMarkets: 4,
			DemandOverSupply: 5, ShortFraction: 1.0,
		})
	}

	out := Render(r, Options{TopN: 2})
	shortage := sectionOf(t, out, "== Broad Shortage Goods (Systemic) ==")
	rows := strings.Count(shortage, "\n") - 2 // 标题行 + 表头行
	if rows != 2 {
		t.Fatalf("expected 2 rows, got %d:\n%s", rows, shortage)
	}
}

func TestRender_ChainDetails(t *testing.T) {
	t.Parallel()

	out := Render(sampleReport(), DefaultOptions())
	if !strings.Contains(out, "- Food: SYSTEMIC_SHORTAGE") {
		t.Fatalf("chain heading missing:\n%s", out)
	}
	if !strings.Contains(out, "stage=Grain goods=grain supply=400.0 demand=100.0 volume=90.0 facilities=10 active=90% labor_fill=80%") {
		t.Fatalf("stage line mismatch:\n%s", out)
	}
	if !strings.Contains(out, "rationale=Final good shortage") {
		t.Fatalf("rationale missing:\n%s", out)
	}
}

func TestFormatRatio(t *testing.T) {
	t.Parallel()

	if got := FormatRatio(math.Inf(1)); got != "inf" {
		t.Fatalf("FormatRatio(+Inf) = %q", got)
	}
	if got := FormatRatio(1.054); got != "1.05" {
		t.Fatalf("FormatRatio(1.054) = %q", got)
	}
	if got := FormatRatio(0); got != "0.00" {
		t.Fatalf("FormatRatio(0) = %q", got)
	}
}

// sectionOf 截取一个 == 标题 == 区块（到下一个空行为止）
func sectionOf(t *testing.T, out, header string) string {
	t.Helper()
	idx := strings.Index(out, header)
	if idx < 0 {
		t.Fatalf("section %q not found", header)
	}
	rest := out[idx:]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		return rest[:end+1]
	}
	return rest
}
