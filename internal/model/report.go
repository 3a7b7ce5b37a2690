package model

import (
	"math"
	"strconv"
)

// Ratio 可能为 +Inf 的比值
// JSON 序列化时 +Inf 输出字符串 "inf"（encoding/json 不支持直接编码 Inf），
// 其余输出普通数字，保留两位小数的展示交给 report 层。
type Ratio float64

// MarshalJSON 实现 json.Marshaler
func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 1) {
		return []byte(`"inf"`), nil
	}
	if math.IsInf(f, -1) {
		return []byte(`"-inf"`), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// UnmarshalJSON 实现 json.Unmarshaler，接受 MarshalJSON 的两种形态
func (r *Ratio) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch s {
	case `"inf"`:
		*r = Ratio(math.Inf(1))
		return nil
	case `"-inf"`:
		*r = Ratio(math.Inf(-1))
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// Report 一次快照分析的完整产出
// core（analyzer）只负责填充它；文本渲染 / Excel 导出 / API 都消费同一份结构。
type Report struct {
	DumpPath    string `json:"dumpPath"`
	SimDay      string `json:"simDay"`
	Calendar    string `json:"calendar"`
	EconomySeed string `json:"economySeed"`
	MarketCount int    `json:"marketCount"`
	CountyCount int    `json:"countyCount"`

	Global     GlobalRow      `json:"global"`
	Offmap     []OffmapRow    `json:"offmap"`
	Goods      []GoodRow      `json:"goods"`
	Facilities []FacilityRow  `json:"facilities"`
	Chains     []ChainRow     `json:"chains"`
}

// GlobalRow 全局信号（来自 dump 顶层 summary 块）
type GlobalRow struct {
	Supply           float64 `json:"supply"`
	Demand           float64 `json:"demand"`
	Volume           float64 `json:"volume"`
	Fill             float64 `json:"fill"`
	DemandOverSupply Ratio   `json:"demandOverSupply"`
	PendingOrders    int     `json:"pendingOrders"`
	ConsignmentLots  int     `json:"consignmentLots"`
}

// OffmapRow 场外市场（type=offmap）概览
type OffmapRow struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PendingOrders   int    `json:"pendingOrders"`
	ConsignmentLots int    `json:"consignmentLots"`
	NonzeroGoods    int    `json:"nonzeroGoods"`
}

// GoodRow 单个商品的聚合指标：6 个累计量 + 派生比值
type GoodRow struct {
	GoodID        string  `json:"goodId"`
	Supply        float64 `json:"supply"`
	Demand        float64 `json:"demand"`
	Volume        float64 `json:"volume"`
	ActiveMarkets int     `json:"activeMarkets"`
	ShortMarkets  int     `json:"shortMarkets"`
	ExcessMarkets int     `json:"excessMarkets"`

	DemandOverSupply Ratio   `json:"demandOverSupply"`
	SupplyOverDemand Ratio   `json:"supplyOverDemand"`
	FillRatio        float64 `json:"fillRatio"`
	ShortFraction    float64 `json:"shortFraction"`
	ExcessFraction   float64 `json:"excessFraction"`
	PriceCV          float64 `json:"priceCv"`
}

// FacilityRow 单个设施类型的聚合指标
type FacilityRow struct {
	FacilityType  string  `json:"facilityType"`
	Count         int     `json:"count"`
	ActiveCount   int     `json:"activeCount"`
	Workers       float64 `json:"workers"`
	LaborRequired float64 `json:"laborRequired"`
	LossDaysSum   float64 `json:"lossDaysSum"`
	WageDebtSum   float64 `json:"wageDebtSum"`

	ActiveRatio   float64 `json:"activeRatio"`
	LaborFill     float64 `json:"laborFill"`
	AvgEfficiency float64 `json:"avgEfficiency"`
}

// ChainRow 单条产业链的诊断结果
type ChainRow struct {
	Name      string     `json:"name"`
	FinalGood string     `json:"finalGood"`
	Class     string     `json:"class"`
	Rationale string     `json:"rationale"`

	Demand           float64 `json:"demand"`
	Supply           float64 `json:"supply"`
	DemandOverSupply Ratio   `json:"demandOverSupply"`
	FillRatio        float64 `json:"fillRatio"`
	ShortFraction    float64 `json:"shortFraction"`
	ExcessFraction   float64 `json:"excessFraction"`

	Stages []StageRow `json:"stages"`
}

// StageRow 产业链单个环节的明细
type StageRow struct {
	Label         string  `json:"label"`
	Goods         string  `json:"goods"`
	Supply        float64 `json:"supply"`
	Demand        float64 `json:"demand"`
	Volume        float64 `json:"volume"`
	FacilityCount int     `json:"facilityCount"`
	ActiveRatio   float64 `json:"activeRatio"`
	LaborFill     float64 `json:"laborFill"`
}
