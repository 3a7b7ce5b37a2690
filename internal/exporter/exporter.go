package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"econwatch/internal/model"
	"econwatch/internal/report"
)

// 工作簿内的固定 sheet 名
const (
	sheetGlobal     = "全局信号"
	sheetGoods      = "商品指标"
	sheetFacilities = "设施指标"
	sheetChains     = "产业链诊断"
)

// Exporter 分析报告 Excel 导出器
// 从报告模型生成四张 sheet 的工作簿：全局信号、商品指标、设施指标、产业链诊断。
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 把报告渲染成工作簿
func (e *Exporter) Export(r *model.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetGlobal); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("重命名默认 sheet 失败: %w", err)
	}
	for _, name := range []string{sheetGoods, sheetFacilities, sheetChains} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("创建 sheet %s 失败: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}

	if err := e.fillGlobalSheet(f, r, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillGoodsSheet(f, r, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillFacilitiesSheet(f, r, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillChainsSheet(f, r, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	if idx, err := f.GetSheetIndex(sheetGlobal); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// ExportToFile 导出并保存到目录，文件名带模拟日与 run ID 前缀
func (e *Exporter) ExportToFile(r *model.Report, dir, runID string) (string, error) {
	f, err := e.Export(r)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建导出目录失败: %w", err)
	}

	name := fmt.Sprintf("econ-report-day%s-%s.xlsx", r.SimDay, shortID(runID))
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("保存工作簿失败: %w", err)
	}
	return path, nil
}

func (e *Exporter) fillGlobalSheet(f *excelize.File, r *model.Report, headerStyle int) error {
	rows := [][]any{
		{"dump", r.DumpPath},
		{"模拟日", r.SimDay},
		{"日历", r.Calendar},
		{"经济种子", r.EconomySeed},
		{"市场数", r.MarketCount},
		{"县数", r.CountyCount},
		{},
		{"总供给", r.Global.Supply},
		{"总需求", r.Global.Demand},
		{"总成交量", r.Global.Volume},
		{"填充率", r.Global.Fill},
		{"需求/供给", report.FormatRatio(float64(r.Global.DemandOverSupply))},
		{"挂单数", r.Global.PendingOrders},
		{"寄售批次", r.Global.ConsignmentLots},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetGlobal, cell, v); err != nil {
				return fmt.Errorf("写入 %s!%s 失败: %w", sheetGlobal, cell, err)
			}
		}
	}

	// 场外市场附在同一 sheet 的下方
	base := len(rows) + 2
	offmapHeader := []any{"场外市场ID", "名称", "挂单", "寄售批次", "非零商品数"}
	if err := writeRow(f, sheetGlobal, base, offmapHeader); err != nil {
		return err
	}
	if err := styleRow(f, sheetGlobal, base, len(offmapHeader), headerStyle); err != nil {
		return err
	}
	for i, m := range r.Offmap {
		row := []any{m.ID, m.Name, m.PendingOrders, m.ConsignmentLots, m.NonzeroGoods}
		if err := writeRow(f, sheetGlobal, base+1+i, row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetGlobal, "A", "B", 22)
}

func (e *Exporter) fillGoodsSheet(f *excelize.File, r *model.Report, headerStyle int) error {
	header := []any{"商品", "供给", "需求", "成交量", "活跃市场", "短缺市场", "过剩市场",
		"需求/供给", "供给/需求", "填充率", "短缺占比", "过剩占比", "价格离散度"}
	if err := writeRow(f, sheetGoods, 1, header); err != nil {
		return err
	}
	if err := styleRow(f, sheetGoods, 1, len(header), headerStyle); err != nil {
		return err
	}

	for i, g := range r.Goods {
		row := []any{
			g.GoodID, g.Supply, g.Demand, g.Volume,
			g.ActiveMarkets, g.ShortMarkets, g.ExcessMarkets,
			report.FormatRatio(float64(g.DemandOverSupply)),
			report.FormatRatio(float64(g.SupplyOverDemand)),
			g.FillRatio, g.ShortFraction, g.ExcessFraction, g.PriceCV,
		}
		if err := writeRow(f, sheetGoods, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetGoods, "A", "A", 18)
}

func (e *Exporter) fillFacilitiesSheet(f *excelize.File, r *model.Report, headerStyle int) error {
	header := []any{"设施类型", "实例数", "活跃数", "用工", "需求用工",
		"累计亏损天", "累计欠薪天", "活跃占比", "用工满足率", "平均效率"}
	if err := writeRow(f, sheetFacilities, 1, header); err != nil {
		return err
	}
	if err := styleRow(f, sheetFacilities, 1, len(header), headerStyle); err != nil {
		return err
	}

	for i, fa := range r.Facilities {
		row := []any{
			fa.FacilityType, fa.Count, fa.ActiveCount, fa.Workers, fa.LaborRequired,
			fa.LossDaysSum, fa.WageDebtSum, fa.ActiveRatio, fa.LaborFill, fa.AvgEfficiency,
		}
		if err := writeRow(f, sheetFacilities, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetFacilities, "A", "A", 18)
}

func (e *Exporter) fillChainsSheet(f *excelize.File, r *model.Report, headerStyle int) error {
	header := []any{"产业链", "成品", "分类", "需求", "供给", "需求/供给",
		"填充率", "短缺占比", "过剩占比", "判定依据"}
	if err := writeRow(f, sheetChains, 1, header); err != nil {
		return err
	}
	if err := styleRow(f, sheetChains, 1, len(header), headerStyle); err != nil {
		return err
	}

	for i, c := range r.Chains {
		row := []any{
			c.Name, c.FinalGood, c.Class, c.Demand, c.Supply,
			report.FormatRatio(float64(c.DemandOverSupply)),
			c.FillRatio, c.ShortFraction, c.ExcessFraction, c.Rationale,
		}
		if err := writeRow(f, sheetChains, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetChains, "A", "C", 18); err != nil {
		return err
	}
	return f.SetColWidth(sheetChains, "J", "J", 80)
}

// writeRow 从 A 列开始写一整行
func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for j, v := range values {
		cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("写入 %s!%s 失败: %w", sheet, cell, err)
		}
	}
	return nil
}

// styleRow 给表头行套样式
func styleRow(f *excelize.File, sheet string, rowNum, cols, style int) error {
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, rowNum)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
