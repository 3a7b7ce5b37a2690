package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"econwatch/internal/model"
)

// 信号清单的筛选门槛：聚合量太小的商品不值得列出
const signalFloor = 100.0

// 系统性/局部性清单共用的分类阈值（与 analyzer 的链诊断一致）
const (
	broadFraction  = 0.7
	mixedLow       = 0.3
	mixedHigh      = 0.7
	dispersedCV    = 0.6
)

// Options 文本报告渲染选项
type Options struct {
	TopN int // 每个系统性清单最多输出的行数
}

// DefaultOptions 默认渲染选项
func DefaultOptions() Options {
	return Options{TopN: 10}
}

// Render 把报告模型渲染成纯文本
// 所有区块顺序与行格式是对外约定，消费方（人和脚本）都在解析它，改动要慎重。
func Render(r *model.Report, opts Options) string {
	if opts.TopN < 1 {
		opts.TopN = 1
	}

	var b strings.Builder
	writeHeader(&b, r)
	writeGlobal(&b, r)
	writeOffmap(&b, r)
	writeGoodSignals(&b, r, opts.TopN)
	writeChains(&b, r)
	return b.String()
}

func writeHeader(b *strings.Builder, r *model.Report) {
	fmt.Fprintf(b, "== Econ Chain Analysis ==\n")
	fmt.Fprintf(b, "dump=%s\n", r.DumpPath)
	fmt.Fprintf(b, "sim_day=%s calendar=%s economySeed=%s\n", r.SimDay, r.Calendar, r.EconomySeed)
	fmt.Fprintf(b, "counties=%d markets=%d\n\n", r.CountyCount, r.MarketCount)
}

func writeGlobal(b *strings.Builder, r *model.Report) {
	g := r.Global
	fmt.Fprintf(b, "== Global System Signals ==\n")
	fmt.Fprintf(b, "supply=%.1f demand=%.1f volume=%.1f fill=%.3f demand/supply=%s pendingOrders=%d lots=%d\n\n",
		g.Supply, g.Demand, g.Volume, g.Fill, FormatRatio(float64(g.DemandOverSupply)), g.PendingOrders, g.ConsignmentLots)
}

func writeOffmap(b *strings.Builder, r *model.Report) {
	fmt.Fprintf(b, "== Off-map Markets ==\n")
	if len(r.Offmap) == 0 {
		fmt.Fprintf(b, "none\n\n")
		return
	}
	for _, m := range r.Offmap {
		fmt.Fprintf(b, "id=%s name=%s pending=%d lots=%d nonzero_goods=%d\n",
			m.ID, m.Name, m.PendingOrders, m.ConsignmentLots, m.NonzeroGoods)
	}
	fmt.Fprintf(b, "\n")
}

// writeGoodSignals 三张商品信号清单：系统性短缺、系统性过剩、局部失衡
func writeGoodSignals(b *strings.Builder, r *model.Report, topN int) {
	var candidates []model.GoodRow
	for _, g := range r.Goods {
		if g.ActiveMarkets > 0 && (g.Demand > 0 || g.Supply > 0) {
			candidates = append(candidates, g)
		}
	}

	var systemicShort, systemicExcess, localized []model.GoodRow
	for _, g := range candidates {
		if g.Demand >= signalFloor && g.ShortFraction >= broadFraction {
			systemicShort = append(systemicShort, g)
		}
		if g.Supply >= signalFloor && g.ExcessFraction >= broadFraction {
			systemicExcess = append(systemicExcess, g)
		}
		if g.Demand >= signalFloor &&
			g.ShortFraction >= mixedLow && g.ShortFraction <= mixedHigh &&
			g.ExcessFraction >= mixedLow && g.ExcessFraction <= mixedHigh &&
			g.PriceCV >= dispersedCV {
			localized = append(localized, g)
		}
	}

	sort.SliceStable(systemicShort, func(i, j int) bool { return systemicShort[i].Demand > systemicShort[j].Demand })
	sort.SliceStable(systemicExcess, func(i, j int) bool { return systemicExcess[i].Supply > systemicExcess[j].Supply })
	sort.SliceStable(localized, func(i, j int) bool { return localized[i].PriceCV > localized[j].PriceCV })

	fmt.Fprintf(b, "== Broad Shortage Goods (Systemic) ==\n")
	fmt.Fprintf(b, "good              demand   supply    d/s   fill  short%% excess%% price_cv\n")
	for _, g := range top(systemicShort, topN) {
		fmt.Fprintf(b, "%-16s %8.1f %8.1f %5s %6.2f %5.0f%% %6.0f%% %8.2f\n",
			g.GoodID, g.Demand, g.Supply, FormatRatio(float64(g.DemandOverSupply)),
			g.FillRatio, g.ShortFraction*100, g.ExcessFraction*100, g.PriceCV)
	}
	fmt.Fprintf(b, "\n")

	fmt.Fprintf(b, "== Broad Oversupply Goods (Systemic) ==\n")
	fmt.Fprintf(b, "good              supply   demand    s/d   fill  short%% excess%% price_cv\n")
	for _, g := range top(systemicExcess, topN) {
		fmt.Fprintf(b, "%-16s %8.1f %8.1f %5s %6.2f %5.0f%% %6.0f%% %8.2f\n",
			g.GoodID, g.Supply, g.Demand, FormatRatio(float64(g.SupplyOverDemand)),
			g.FillRatio, g.ShortFraction*100, g.ExcessFraction*100, g.PriceCV)
	}
	fmt.Fprintf(b, "\n")

	fmt.Fprintf(b, "== Localized / Mixed Goods ==\n")
	fmt.Fprintf(b, "good              demand   supply    d/s   fill  short%% excess%% price_cv\n")
	for _, g := range top(localized, topN) {
		fmt.Fprintf(b, "%-16s %8.1f %8.1f %5s %6.2f %5.0f%% %6.0f%% %8.2f\n",
			g.GoodID, g.Demand, g.Supply, FormatRatio(float64(g.DemandOverSupply)),
			g.FillRatio, g.ShortFraction*100, g.ExcessFraction*100, g.PriceCV)
	}
	fmt.Fprintf(b, "\n")
}

func writeChains(b *strings.Builder, r *model.Report) {
	fmt.Fprintf(b, "== Chain Diagnoses ==\n")
	fmt.Fprintf(b, "chain          final_good       demand   supply    d/s   fill  short%% excess%% class\n")
	for _, c := range r.Chains {
		fmt.Fprintf(b, "%-14s %-16s %8.1f %8.1f %5s %6.2f %5.0f%% %6.0f%% %s\n",
			c.Name, c.FinalGood, c.Demand, c.Supply, FormatRatio(float64(c.DemandOverSupply)),
			c.FillRatio, c.ShortFraction*100, c.ExcessFraction*100, c.Class)
	}
	fmt.Fprintf(b, "\n")

	fmt.Fprintf(b, "== Chain Details ==\n")
	for _, c := range r.Chains {
		fmt.Fprintf(b, "- %s: %s\n", c.Name, c.Class)
		fmt.Fprintf(b, "  final=%s demand=%.1f supply=%.1f fill=%.2f\n", c.FinalGood, c.Demand, c.Supply, c.FillRatio)
		for _, s := range c.Stages {
			fmt.Fprintf(b, "  stage=%s goods=%s supply=%.1f demand=%.1f volume=%.1f facilities=%d active=%.0f%% labor_fill=%.0f%%\n",
				s.Label, s.Goods, s.Supply, s.Demand, s.Volume, s.FacilityCount, s.ActiveRatio*100, s.LaborFill*100)
		}
		fmt.Fprintf(b, "  rationale=%s\n", c.Rationale)
	}
	fmt.Fprintf(b, "\n")
}

// FormatRatio 比值展示：+Inf 输出 inf，其余两位小数
func FormatRatio(value float64) string {
	if math.IsInf(value, 0) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", value)
}

func top(rows []model.GoodRow, n int) []model.GoodRow {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
