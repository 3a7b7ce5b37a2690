package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRatioMarshalJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Ratio
		want string
	}{
		{Ratio(math.Inf(1)), `"inf"`},
		{Ratio(math.Inf(-1)), `"-inf"`},
		{Ratio(2.5), "2.5"},
		{Ratio(0), "0"},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.in)
		if err != nil {
			t.Fatalf("marshal %v: %v", float64(c.in), err)
		}
		if string(b) != c.want {
			t.Fatalf("marshal %v = %s, want %s", float64(c.in), b, c.want)
		}
	}
}

func TestRatioRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []Ratio{Ratio(math.Inf(1)), Ratio(math.Inf(-1)), Ratio(1.05), Ratio(0)} {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Ratio
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if float64(back) != float64(v) {
			t.Fatalf("round trip %v -> %v", float64(v), float64(back))
		}
	}
}

func TestRatioUnmarshalRejectsGarbage(t *testing.T) {
	t.Parallel()

	var r Ratio
	if err := json.Unmarshal([]byte(`"fast"`), &r); err == nil {
		t.Fatalf("expected error for non-ratio string")
	}
}

func TestReportJSONRoundTripKeepsInf(t *testing.T) {
	t.Parallel()

	report := Report{
		SimDay: "42",
		Global: GlobalRow{Supply: 0, Demand: 10, DemandOverSupply: Ratio(math.Inf(1))},
		Goods: []GoodRow{
			{GoodID: "salt", Demand: 5, DemandOverSupply: Ratio(math.Inf(1)), SupplyOverDemand: 0},
		},
	}

	b, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	var back Report
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if !math.IsInf(float64(back.Global.DemandOverSupply), 1) {
		t.Fatalf("global ratio lost Inf: %v", float64(back.Global.DemandOverSupply))
	}
	if !math.IsInf(float64(back.Goods[0].DemandOverSupply), 1) {
		t.Fatalf("good ratio lost Inf: %v", float64(back.Goods[0].DemandOverSupply))
	}
}
