package model

// Dump 经济模拟快照（econ dump）
// 对应模拟端每日导出的 JSON 文档，数值叶子字段可能缺失或类型不规范，
// 统一用 any 承载，读取时通过 Float/Bool 做宽容转换。
type Dump struct {
	Day        any       `json:"day"`
	Year       any       `json:"year"`
	Month      any       `json:"month"`
	DayOfMonth any       `json:"dayOfMonth"`
	Summary    Summary   `json:"summary"`
	Markets    []Market  `json:"markets"`
	Counties   []County  `json:"counties"`
}

// Summary dump 顶层汇总块
// 与逐市场聚合无关，是模拟端自己统计的全局数字。
type Summary struct {
	EconomySeed          any `json:"economySeed"`
	TotalMarketSupply    any `json:"totalMarketSupply"`
	TotalMarketDemand    any `json:"totalMarketDemand"`
	TotalMarketVolume    any `json:"totalMarketVolume"`
	TotalPendingOrders   any `json:"totalPendingOrders"`
	TotalConsignmentLots any `json:"totalConsignmentLots"`
}

// Market 单个市场记录
// Goods 保留原始键值形态：商品ID -> 字段名 -> 原始值。
// 字段名与取值的解释（supplyOffered 优先于 supply 等）留给聚合层。
type Market struct {
	ID              any                       `json:"id"`
	Name            string                    `json:"name"`
	Type            string                    `json:"type"`
	PendingOrders   any                       `json:"pendingOrders"`
	ConsignmentLots any                       `json:"consignmentLots"`
	Goods           map[string]map[string]any `json:"goods"`
}

// County 单个县记录，只关心设施列表
type County struct {
	Facilities []Facility `json:"facilities"`
}

// Facility 单个设施实例记录
// Type 为空的记录无法归类，聚合时整条跳过。
type Facility struct {
	Type                string `json:"type"`
	Active              any    `json:"active"`
	Workers             any    `json:"workers"`
	LaborRequired       any    `json:"laborRequired"`
	Efficiency          any    `json:"efficiency"`
	ConsecutiveLossDays any    `json:"consecutiveLossDays"`
	WageDebtDays        any    `json:"wageDebtDays"`
}
