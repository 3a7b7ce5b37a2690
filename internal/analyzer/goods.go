package analyzer

import (
	"math"

	"econwatch/internal/model"
)

// 短缺/过剩判定阈值：需求超过供给 5%（或反之）才计为失衡市场
const imbalanceThreshold = 1.05

// GoodMetrics 单个商品跨所有市场的累计指标
// 六个累计字段在聚合时写入，比值一律在读取时派生，不落地。
type GoodMetrics struct {
	Supply        float64
	Demand        float64
	Volume        float64
	Prices        []float64
	ActiveMarkets int
	ShortMarkets  int
	ExcessMarkets int
}

// DemandOverSupply 需求/供给比
// 供给为 0 且需求为正时返回 +Inf；双零返回 0。
func (g *GoodMetrics) DemandOverSupply() float64 {
	if g.Supply <= 0 {
		if g.Demand > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return g.Demand / g.Supply
}

// SupplyOverDemand 供给/需求比，约定与 DemandOverSupply 对称
func (g *GoodMetrics) SupplyOverDemand() float64 {
	if g.Demand <= 0 {
		if g.Supply > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return g.Supply / g.Demand
}

// FillRatio 成交量对需求的满足率
// 需求不为正时按定义视作完全满足，返回 1.0。
func (g *GoodMetrics) FillRatio() float64 {
	if g.Demand <= 0 {
		return 1.0
	}
	return g.Volume / g.Demand
}

// ShortFraction 短缺市场占活跃市场的比例，无活跃市场时为 0
func (g *GoodMetrics) ShortFraction() float64 {
	if g.ActiveMarkets <= 0 {
		return 0
	}
	return float64(g.ShortMarkets) / float64(g.ActiveMarkets)
}

// ExcessFraction 过剩市场占活跃市场的比例，无活跃市场时为 0
func (g *GoodMetrics) ExcessFraction() float64 {
	if g.ActiveMarkets <= 0 {
		return 0
	}
	return float64(g.ExcessMarkets) / float64(g.ActiveMarkets)
}

// PriceCV 跨市场价格离散度：总体标准差 / 均值
// 无价格样本或均值不为正时返回 0。
func (g *GoodMetrics) PriceCV() float64 {
	if len(g.Prices) == 0 {
		return 0
	}
	var sum float64
	for _, p := range g.Prices {
		sum += p
	}
	mean := sum / float64(len(g.Prices))
	if mean <= 0 {
		return 0
	}
	var variance float64
	for _, p := range g.Prices {
		d := p - mean
		variance += d * d
	}
	variance /= float64(len(g.Prices))
	return math.Sqrt(variance) / mean
}

// AggregateGoods 把所有市场的逐商品记录折叠成每商品一份累计指标
// supply 优先取 supplyOffered 字段，缺失时退回 supply；
// 供给或需求严格为正的市场才计入 active，并在 active 市场中判短缺/过剩。
func AggregateGoods(markets []model.Market) map[string]*GoodMetrics {
	goods := make(map[string]*GoodMetrics)
	for _, market := range markets {
		for goodID, payload := range market.Goods {
			gm := goods[goodID]
			if gm == nil {
				gm = &GoodMetrics{}
				goods[goodID] = gm
			}

			supply := goodSupply(payload)
			demand := model.Float(payload["demand"])
			volume := model.Float(payload["volume"])
			price := model.Float(payload["price"])

			gm.Supply += supply
			gm.Demand += demand
			gm.Volume += volume
			gm.Prices = append(gm.Prices, price)

			if supply > 0 || demand > 0 {
				gm.ActiveMarkets++
				if demand > supply*imbalanceThreshold {
					gm.ShortMarkets++
				} else if supply > demand*imbalanceThreshold {
					gm.ExcessMarkets++
				}
			}
		}
	}
	return goods
}

// goodSupply 读取单条商品记录的供给值，supplyOffered 优先
func goodSupply(payload map[string]any) float64 {
	if v, ok := payload["supplyOffered"]; ok {
		return model.Float(v)
	}
	return model.Float(payload["supply"])
}
