package analyzer

import (
	"fmt"
	"math"
)

// ChainClass 产业链诊断分类（闭合枚举）
type ChainClass string

const (
	// NoSignal 成品全图零供零需，无可诊断
	NoSignal ChainClass = "NO_SIGNAL"
	// SystemicUpstreamGap 成品零供有需，且原料环节全图也零供：缺口在链条源头
	SystemicUpstreamGap ChainClass = "SYSTEMIC_UPSTREAM_GAP"
	// ChainConversionBottleneck 成品零供有需，但原料在图上存在：转换环节整体停摆
	ChainConversionBottleneck ChainClass = "CHAIN_CONVERSION_BOTTLENECK"
	// ChainProcessingBottleneck 多数市场短缺且原料充裕、加工环节健康度弱：瓶颈在加工
	ChainProcessingBottleneck ChainClass = "CHAIN_PROCESSING_BOTTLENECK"
	// SystemicShortage 多数市场短缺但无法归因到单一加工环节的普遍供给不足
	SystemicShortage ChainClass = "SYSTEMIC_SHORTAGE"
	// SystemicOversupply 多数市场过剩且供给至少两倍于需求
	SystemicOversupply ChainClass = "SYSTEMIC_OVERSUPPLY"
	// LocalizedDistributionImbalance 部分市场短缺部分过剩、价格高度离散：分配/运输问题
	LocalizedDistributionImbalance ChainClass = "LOCALIZED_DISTRIBUTION_IMBALANCE"
	// Mixed 兜底：快照中没有单一主导的失衡模式
	Mixed ChainClass = "MIXED"
)

// 分类判定阈值，全部为手工调定的经验常数，与判定场景一一绑定，不要重新推导
const (
	shortFractionHigh   = 0.7  // 多数市场短缺/过剩判定
	ratioDoubled        = 2.0  // 供需比翻倍判定
	rawAbundantRatio    = 0.2  // 原料需求/供给低于此值视为原料充裕
	weakActiveRatio     = 0.4  // 加工设施活跃占比低于此值视为弱
	weakLaborFill       = 0.35 // 加工设施用工满足率低于此值视为弱
	mixedFractionLow    = 0.3  // 短缺/过剩并存区间下界
	mixedFractionHigh   = 0.7  // 短缺/过剩并存区间上界
	dispersedPriceCV    = 0.6  // 价格离散判定
)

// StageTotals 汇总一个环节多个商品的供给/需求/成交量
// 未出现在聚合结果中的商品按不存在跳过（等价于零值）。
func StageTotals(goods map[string]*GoodMetrics, stageGoods []string) (supply, demand, volume float64) {
	for _, goodID := range stageGoods {
		gm := goods[goodID]
		if gm == nil {
			continue
		}
		supply += gm.Supply
		demand += gm.Demand
		volume += gm.Volume
	}
	return supply, demand, volume
}

// WeightedFacilityHealth 一组设施类型的按实例数加权健康度
// 只统计 Count>0 的类型；没有任何合格类型时返回 (0,0,0)，
// 调用方以 count>0 作为"健康度存在"的闸门，而不是把零当作零健康。
func WeightedFacilityHealth(facilities map[string]*FacilityMetrics, facilityIDs []string) (active, fill float64, count int) {
	var activeSum, fillSum float64
	for _, facilityID := range facilityIDs {
		fm := facilities[facilityID]
		if fm == nil || fm.Count <= 0 {
			continue
		}
		count += fm.Count
		activeSum += fm.ActiveRatio() * float64(fm.Count)
		fillSum += fm.LaborFill() * float64(fm.Count)
	}
	if count <= 0 {
		return 0, 0, 0
	}
	return activeSum / float64(count), fillSum / float64(count), count
}

// Classify 对一条产业链做瓶颈诊断
// 纯函数：只依赖链定义和两份聚合指标，按固定优先级逐条匹配，
// 首条命中即返回分类与一句话的判定依据。
func Classify(chain ChainDef, goods map[string]*GoodMetrics, facilities map[string]*FacilityMetrics) (ChainClass, string) {
	final := goods[chain.FinalGood()]
	if final == nil {
		final = &GoodMetrics{}
	}
	rawSupply, rawDemand, _ := StageTotals(goods, chain.RawGoods())

	var processingFacilities []string
	for _, stage := range chain.Stages[1:] {
		processingFacilities = append(processingFacilities, stage.Facilities...)
	}
	processingActive, processingFill, processingCount := WeightedFacilityHealth(facilities, processingFacilities)

	rawDemandOverSupply := math.Inf(1)
	if rawSupply > 0 {
		rawDemandOverSupply = rawDemand / rawSupply
	}
	rawAbundant := rawSupply > 0 && rawDemandOverSupply < rawAbundantRatio
	processingWeak := processingCount > 0 && (processingActive < weakActiveRatio || processingFill < weakLaborFill)

	if final.Demand <= 0 && final.Supply <= 0 {
		return NoSignal, "No demand and no supply in this dump."
	}

	if final.Supply <= 0 && final.Demand > 0 {
		if rawSupply <= 0 {
			return SystemicUpstreamGap,
				"Demand exists but zero supply and zero upstream raw supply on-map; likely import/exogenous availability gap."
		}
		return ChainConversionBottleneck,
			"Demand exists with zero final supply despite upstream presence; conversion stage is effectively offline."
	}

	if final.ShortFraction() >= shortFractionHigh && final.DemandOverSupply() >= ratioDoubled {
		if rawAbundant && processingWeak {
			return ChainProcessingBottleneck,
				fmt.Sprintf("Final good is short in most markets while raw inputs are abundant; processing health is weak (active=%.0f%%, labor_fill=%.0f%%).",
					processingActive*100, processingFill*100)
		}
		return SystemicShortage,
			"Final good shortage appears in most active markets, indicating broad under-supply not isolated to one market."
	}

	if final.ExcessFraction() >= shortFractionHigh && final.SupplyOverDemand() >= ratioDoubled {
		return SystemicOversupply,
			"Final good is in excess across most active markets; demand pull is weak versus available supply."
	}

	if final.ShortFraction() >= mixedFractionLow && final.ShortFraction() <= mixedFractionHigh &&
		final.ExcessFraction() >= mixedFractionLow && final.ExcessFraction() <= mixedFractionHigh &&
		final.PriceCV() >= dispersedPriceCV {
		return LocalizedDistributionImbalance,
			"Mixed shortage/excess by market with high cross-market price dispersion suggests routing/distribution fragmentation."
	}

	return Mixed, "No single dominant failure mode from this snapshot."
}
