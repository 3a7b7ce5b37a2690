package analyzer

import (
	"math"
	"strings"

	"econwatch/internal/model"
)

// GlobalSignals 来自 dump 顶层 summary 块的系统级信号
// 与逐市场聚合相互独立，是模拟端自己统计的全局总量。
type GlobalSignals struct {
	Supply           float64
	Demand           float64
	Volume           float64
	Fill             float64
	DemandOverSupply float64
	PendingOrders    int
	ConsignmentLots  int
}

// SummarizeGlobal 从 summary 块派生全局填充率与供需比
// fill 在需求不为正时按定义为 1.0；demand/supply 在供给不为正时为 +Inf
// （全局比值沿用旧实现的约定，与逐商品的双零归 0 不同）。
func SummarizeGlobal(summary model.Summary) GlobalSignals {
	supply := model.Float(summary.TotalMarketSupply)
	demand := model.Float(summary.TotalMarketDemand)
	volume := model.Float(summary.TotalMarketVolume)

	fill := 1.0
	if demand > 0 {
		fill = volume / demand
	}
	demandOverSupply := math.Inf(1)
	if supply > 0 {
		demandOverSupply = demand / supply
	}

	return GlobalSignals{
		Supply:           supply,
		Demand:           demand,
		Volume:           volume,
		Fill:             fill,
		DemandOverSupply: demandOverSupply,
		PendingOrders:    model.Int(summary.TotalPendingOrders),
		ConsignmentLots:  model.Int(summary.TotalConsignmentLots),
	}
}

// OffmapMarket 单个场外市场的概览
type OffmapMarket struct {
	ID              string
	Name            string
	PendingOrders   int
	ConsignmentLots int
	NonzeroGoods    int
}

// SummarizeOffmap 挑出 type=offmap（大小写不敏感）的市场
// 对每个场外市场统计供给/需求/成交量任一非零的商品数。
func SummarizeOffmap(markets []model.Market) []OffmapMarket {
	var offmap []OffmapMarket
	for _, market := range markets {
		if !strings.EqualFold(market.Type, "offmap") {
			continue
		}
		nonzero := 0
		for _, payload := range market.Goods {
			supply := goodSupply(payload)
			demand := model.Float(payload["demand"])
			volume := model.Float(payload["volume"])
			if supply != 0 || demand != 0 || volume != 0 {
				nonzero++
			}
		}
		offmap = append(offmap, OffmapMarket{
			ID:              model.Text(market.ID),
			Name:            market.Name,
			PendingOrders:   model.Int(market.PendingOrders),
			ConsignmentLots: model.Int(market.ConsignmentLots),
			NonzeroGoods:    nonzero,
		})
	}
	return offmap
}
