package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"econwatch/internal/model"
)

// BuildReport 对一份快照跑完整的聚合+分类流程，产出报告模型
// 聚合结果按 key 排序后落入切片，保证同一份 dump 的输出逐字节稳定。
// 所有状态在本次调用内新建并随返回值交出，不跨调用复用。
func BuildReport(dump *model.Dump, dumpPath string) *model.Report {
	goods := AggregateGoods(dump.Markets)
	facilities := AggregateFacilities(dump.Counties)

	report := &model.Report{
		DumpPath:    dumpPath,
		SimDay:      model.Text(dump.Day),
		Calendar:    fmt.Sprintf("%s-%s-%s", model.Text(dump.Year), model.Text(dump.Month), model.Text(dump.DayOfMonth)),
		EconomySeed: model.Text(dump.Summary.EconomySeed),
		MarketCount: len(dump.Markets),
		CountyCount: len(dump.Counties),
	}

	global := SummarizeGlobal(dump.Summary)
	report.Global = model.GlobalRow{
		Supply:           global.Supply,
		Demand:           global.Demand,
		Volume:           global.Volume,
		Fill:             global.Fill,
		DemandOverSupply: model.Ratio(global.DemandOverSupply),
		PendingOrders:    global.PendingOrders,
		ConsignmentLots:  global.ConsignmentLots,
	}

	for _, m := range SummarizeOffmap(dump.Markets) {
		report.Offmap = append(report.Offmap, model.OffmapRow{
			ID:              m.ID,
			Name:            m.Name,
			PendingOrders:   m.PendingOrders,
			ConsignmentLots: m.ConsignmentLots,
			NonzeroGoods:    m.NonzeroGoods,
		})
	}

	goodIDs := make([]string, 0, len(goods))
	for id := range goods {
		goodIDs = append(goodIDs, id)
	}
	sort.Strings(goodIDs)
	for _, id := range goodIDs {
		report.Goods = append(report.Goods, goodRow(id, goods[id]))
	}

	facilityTypes := make([]string, 0, len(facilities))
	for ft := range facilities {
		facilityTypes = append(facilityTypes, ft)
	}
	sort.Strings(facilityTypes)
	for _, ft := range facilityTypes {
		report.Facilities = append(report.Facilities, facilityRow(ft, facilities[ft]))
	}

	for _, chain := range ChainDefs {
		report.Chains = append(report.Chains, chainRow(chain, goods, facilities))
	}

	return report
}

// goodRow 把单个商品的累计指标连同派生比值铺平成报告行
func goodRow(id string, gm *GoodMetrics) model.GoodRow {
	return model.GoodRow{
		GoodID:           id,
		Supply:           gm.Supply,
		Demand:           gm.Demand,
		Volume:           gm.Volume,
		ActiveMarkets:    gm.ActiveMarkets,
		ShortMarkets:     gm.ShortMarkets,
		ExcessMarkets:    gm.ExcessMarkets,
		DemandOverSupply: model.Ratio(gm.DemandOverSupply()),
		SupplyOverDemand: model.Ratio(gm.SupplyOverDemand()),
		FillRatio:        gm.FillRatio(),
		ShortFraction:    gm.ShortFraction(),
		ExcessFraction:   gm.ExcessFraction(),
		PriceCV:          gm.PriceCV(),
	}
}

// facilityRow 把单个设施类型的累计指标铺平成报告行
func facilityRow(ft string, fm *FacilityMetrics) model.FacilityRow {
	return model.FacilityRow{
		FacilityType:  ft,
		Count:         fm.Count,
		ActiveCount:   fm.ActiveCount,
		Workers:       fm.Workers,
		LaborRequired: fm.LaborRequired,
		LossDaysSum:   fm.LossDaysSum,
		WageDebtSum:   fm.WageDebtSum,
		ActiveRatio:   fm.ActiveRatio(),
		LaborFill:     fm.LaborFill(),
		AvgEfficiency: fm.AvgEfficiency(),
	}
}

// chainRow 对单条链做诊断并附带逐环节明细
func chainRow(chain ChainDef, goods map[string]*GoodMetrics, facilities map[string]*FacilityMetrics) model.ChainRow {
	class, rationale := Classify(chain, goods, facilities)

	final := goods[chain.FinalGood()]
	if final == nil {
		final = &GoodMetrics{}
	}

	row := model.ChainRow{
		Name:             chain.Name,
		FinalGood:        chain.FinalGood(),
		Class:            string(class),
		Rationale:        rationale,
		Demand:           final.Demand,
		Supply:           final.Supply,
		DemandOverSupply: model.Ratio(final.DemandOverSupply()),
		FillRatio:        final.FillRatio(),
		ShortFraction:    final.ShortFraction(),
		ExcessFraction:   final.ExcessFraction(),
	}

	for _, stage := range chain.Stages {
		supply, demand, volume := StageTotals(goods, stage.Goods)
		active, fill, count := WeightedFacilityHealth(facilities, stage.Facilities)
		row.Stages = append(row.Stages, model.StageRow{
			Label:         stage.Label,
			Goods:         strings.Join(stage.Goods, "+"),
			Supply:        supply,
			Demand:        demand,
			Volume:        volume,
			FacilityCount: count,
			ActiveRatio:   active,
			LaborFill:     fill,
		})
	}

	return row
}
