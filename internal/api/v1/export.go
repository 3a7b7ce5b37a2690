package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"econwatch/internal/exporter"
	"econwatch/internal/store"
)

// 导出下载令牌的有效期
const exportDownloadTTL = 10 * time.Minute

// ExportRequest 导出请求体
type ExportRequest struct {
	RunID string `json:"runId"`
}

// ExportResponse 导出响应：一次性下载令牌
type ExportResponse struct {
	Token    string `json:"token"`
	FileName string `json:"fileName"`
}

// Export 把一条分析记录导出为 Excel 工作簿
// POST /api/export
// 文件落在 data/exports 下，返回带 TTL 的一次性下载令牌。
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RunID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "需要 JSON 字段 runId"})
		return
	}

	detail, err := h.store.GetRun(req.RunID)
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	exportDir := filepath.Join(h.dataDir, "exports")
	path, err := exporter.NewExporter().ExportToFile(detail.Report, exportDir, detail.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token := h.downloads.put(path, detail.ID, exportDownloadTTL)
	c.JSON(http.StatusOK, ExportResponse{
		Token:    token,
		FileName: filepath.Base(path),
	})
}

// DownloadExport 按令牌下载导出文件
// GET /api/export/download/:token
// 令牌一次有效，下载后立即失效。
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载令牌无效或已过期"})
		return
	}
	h.downloads.delete(token)

	fileName := filepath.Base(item.filePath)
	c.Header("Content-Disposition", buildExportContentDisposition(fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)
}

// buildExportContentDisposition 下载响应头，兼容非 ASCII 文件名
func buildExportContentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		fileName, url.PathEscape(fileName))
}
