package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"econwatch/internal/model"
)

// ErrRunNotFound 指定的分析记录不存在
var ErrRunNotFound = errors.New("run not found")

// RunSummary 分析记录列表项
type RunSummary struct {
	ID          string  `json:"id"`
	DumpPath    string  `json:"dumpPath"`
	SimDay      string  `json:"simDay"`
	Calendar    string  `json:"calendar"`
	EconomySeed string  `json:"economySeed"`
	MarketCount int     `json:"marketCount"`
	CountyCount int     `json:"countyCount"`
	GlobalFill  float64 `json:"globalFill"`
	CreatedAt   string  `json:"createdAt"`
}

// RunDetail 单条分析记录的完整内容
type RunDetail struct {
	ID        string        `json:"id"`
	CreatedAt string        `json:"createdAt"`
	Report    *model.Report `json:"report"`
}

// ChainTrendPoint 某条产业链在一次分析中的结论，按时间排列构成趋势
type ChainTrendPoint struct {
	RunID     string `json:"runId"`
	SimDay    string `json:"simDay"`
	Class     string `json:"class"`
	Rationale string `json:"rationale"`
	CreatedAt string `json:"createdAt"`
}

// InsertRun 落库一次分析结果，返回生成的 run ID
// runs 行带完整 report_json，子表冗余趋势查询列；同一事务写入。
func (s *Store) InsertRun(report *model.Report) (string, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("序列化报告失败: %w", err)
	}

	runID := uuid.New().String()

	tx, err := s.BeginTx()
	if err != nil {
		return "", fmt.Errorf("开始事务失败: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO runs (
			id, dump_path, sim_day, calendar, economy_seed,
			market_count, county_count,
			global_supply, global_demand, global_volume, global_fill,
			pending_orders, consignment_lots, report_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, report.DumpPath, report.SimDay, report.Calendar, report.EconomySeed,
		report.MarketCount, report.CountyCount,
		report.Global.Supply, report.Global.Demand, report.Global.Volume, report.Global.Fill,
		report.Global.PendingOrders, report.Global.ConsignmentLots, string(reportJSON)); err != nil {
		return "", fmt.Errorf("写入 run 失败: %w", err)
	}

	for _, g := range report.Goods {
		if _, err := tx.Exec(`
			INSERT INTO run_goods (
				run_id, good_id, supply, demand, volume,
				active_markets, short_markets, excess_markets,
				fill_ratio, short_fraction, excess_fraction, price_cv
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, g.GoodID, g.Supply, g.Demand, g.Volume,
			g.ActiveMarkets, g.ShortMarkets, g.ExcessMarkets,
			g.FillRatio, g.ShortFraction, g.ExcessFraction, g.PriceCV); err != nil {
			return "", fmt.Errorf("写入 run_goods 失败: %w", err)
		}
	}

	for _, f := range report.Facilities {
		if _, err := tx.Exec(`
			INSERT INTO run_facilities (
				run_id, facility_type, count, active_count,
				workers, labor_required, active_ratio, labor_fill, avg_efficiency
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, f.FacilityType, f.Count, f.ActiveCount,
			f.Workers, f.LaborRequired, f.ActiveRatio, f.LaborFill, f.AvgEfficiency); err != nil {
			return "", fmt.Errorf("写入 run_facilities 失败: %w", err)
		}
	}

	for _, c := range report.Chains {
		if _, err := tx.Exec(`
			INSERT INTO run_chains (
				run_id, chain_name, final_good, class, rationale,
				demand, supply, fill_ratio, short_fraction, excess_fraction
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, c.Name, c.FinalGood, c.Class, c.Rationale,
			c.Demand, c.Supply, c.FillRatio, c.ShortFraction, c.ExcessFraction); err != nil {
			return "", fmt.Errorf("写入 run_chains 失败: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("提交事务失败: %w", err)
	}
	return runID, nil
}

// ListRuns 按创建时间倒序列出分析记录
func (s *Store) ListRuns() ([]RunSummary, error) {
	rows, err := s.Query(`
		SELECT id, dump_path, sim_day, calendar, economy_seed,
		       market_count, county_count, global_fill, created_at
		FROM runs ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("查询 runs 失败: %w", err)
	}
	defer rows.Close()

	summaries := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.DumpPath, &r.SimDay, &r.Calendar, &r.EconomySeed,
			&r.MarketCount, &r.CountyCount, &r.GlobalFill, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("扫描 run 行失败: %w", err)
		}
		summaries = append(summaries, r)
	}
	return summaries, rows.Err()
}

// GetRun 取单条分析记录（含完整报告）
func (s *Store) GetRun(id string) (*RunDetail, error) {
	var reportJSON, createdAt string
	err := s.QueryRow(`SELECT report_json, created_at FROM runs WHERE id = ?`, id).
		Scan(&reportJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询 run 失败: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("反序列化报告失败: %w", err)
	}

	return &RunDetail{ID: id, CreatedAt: createdAt, Report: &report}, nil
}

// DeleteRun 删除一条分析记录及其子表行
func (s *Store) DeleteRun(id string) error {
	tx, err := s.BeginTx()
	if err != nil {
		return fmt.Errorf("开始事务失败: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("删除 run 失败: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrRunNotFound
	}
	for _, table := range []string{"run_goods", "run_facilities", "run_chains"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("删除 %s 失败: %w", table, err)
		}
	}
	return tx.Commit()
}

// CountRuns 统计分析记录总数
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("统计 runs 失败: %w", err)
	}
	return n, nil
}

// ChainTrend 某条产业链跨历次分析的分类序列（按时间正序）
func (s *Store) ChainTrend(chainName string) ([]ChainTrendPoint, error) {
	rows, err := s.Query(`
		SELECT c.run_id, r.sim_day, c.class, c.rationale, r.created_at
		FROM run_chains c
		JOIN runs r ON r.id = c.run_id
		WHERE c.chain_name = ?
		ORDER BY r.created_at ASC, r.id ASC
	`, chainName)
	if err != nil {
		return nil, fmt.Errorf("查询链趋势失败: %w", err)
	}
	defer rows.Close()

	points := []ChainTrendPoint{}
	for rows.Next() {
		var p ChainTrendPoint
		if err := rows.Scan(&p.RunID, &p.SimDay, &p.Class, &p.Rationale, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("扫描趋势行失败: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
