package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"econwatch/internal/report"
	"econwatch/internal/store"
)

// ListRuns 列出全部分析记录
// GET /api/runs
func (h *Handler) ListRuns(c *gin.Context) {
	runs, err := h.store.ListRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun 取单条分析记录（含完整报告模型）
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	detail, err := h.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetRunReport 以纯文本渲染一条分析记录
// GET /api/runs/:id/report
func (h *Handler) GetRunReport(c *gin.Context) {
	detail, err := h.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	opts := report.Options{TopN: h.cfg.Report.TopN}
	c.String(http.StatusOK, report.Render(detail.Report, opts))
}

// DeleteRun 删除一条分析记录
// DELETE /api/runs/:id
func (h *Handler) DeleteRun(c *gin.Context) {
	err := h.store.DeleteRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
