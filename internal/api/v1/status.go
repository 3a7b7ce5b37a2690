package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"econwatch/internal/analyzer"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized bool   `json:"initialized"` // 是否已有分析记录
	RunCount    int    `json:"runCount"`    // 分析记录总数
	ChainCount  int    `json:"chainCount"`  // 注册表中的产业链条数
	LastRunID   string `json:"lastRunId"`   // 最近一次分析的 ID
	LastRunTime string `json:"lastRunTime"` // 最近一次分析的时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	runCount, err := h.store.CountRuns()
	if err != nil {
		runCount = 0
	}

	resp := StatusResponse{
		Initialized: runCount > 0,
		RunCount:    runCount,
		ChainCount:  len(analyzer.ChainDefs),
	}

	if runCount > 0 {
		if runs, err := h.store.ListRuns(); err == nil && len(runs) > 0 {
			resp.LastRunID = runs[0].ID
			resp.LastRunTime = runs[0].CreatedAt
		}
	}

	c.JSON(http.StatusOK, resp)
}
