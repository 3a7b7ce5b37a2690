package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"econwatch/internal/analyzer"
)

// ChainTrendResponse 产业链分类趋势响应
type ChainTrendResponse struct {
	Chain  string                  `json:"chain"`
	Points []ChainTrendPointView   `json:"points"`
}

// ChainTrendPointView 趋势中的单个点
type ChainTrendPointView struct {
	RunID     string `json:"runId"`
	SimDay    string `json:"simDay"`
	Class     string `json:"class"`
	CreatedAt string `json:"createdAt"`
}

// GetChainTrend 某条产业链跨历次分析的分类序列
// GET /api/trends/chains/:name
// 只对注册表中的链名响应；未知链名返回 404，避免把空序列误读成"一直无信号"。
func (h *Handler) GetChainTrend(c *gin.Context) {
	name := c.Param("name")

	known := false
	for _, chain := range analyzer.ChainDefs {
		if chain.Name == name {
			known = true
			break
		}
	}
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chain: " + name})
		return
	}

	points, err := h.store.ChainTrend(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := ChainTrendResponse{Chain: name, Points: []ChainTrendPointView{}}
	for _, p := range points {
		resp.Points = append(resp.Points, ChainTrendPointView{
			RunID:     p.RunID,
			SimDay:    p.SimDay,
			Class:     p.Class,
			CreatedAt: p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
