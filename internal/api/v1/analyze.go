package v1

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"econwatch/internal/analyzer"
	"econwatch/internal/model"
	"econwatch/internal/parser"
)

// AnalyzeRequest 按路径分析的请求体（与 multipart 上传二选一）
type AnalyzeRequest struct {
	Path string `json:"path"`
}

// AnalyzeResponse 分析结果响应
type AnalyzeResponse struct {
	RunID  string        `json:"runId"`
	Report *model.Report `json:"report"`
}

// Analyze 分析一份快照并落库
// POST /api/analyze
// 两种输入：multipart 字段 "dump" 上传文件，或 JSON {"path": "..."} 指向服务器本地文件。
// dump 本体读完即弃，只保存分析产出。
func (h *Handler) Analyze(c *gin.Context) {
	var (
		dump     *model.Dump
		dumpPath string
	)

	if file, err := c.FormFile("dump"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败: " + err.Error()})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败: " + err.Error()})
			return
		}
		dump, err = parser.ParseDump(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dumpPath = filepath.Base(file.Filename)
	} else {
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Path == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "需要 multipart 字段 dump 或 JSON 字段 path"})
			return
		}
		loaded, err := parser.LoadDump(req.Path)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dump = loaded
		dumpPath = req.Path
	}

	report := analyzer.BuildReport(dump, dumpPath)

	runID, err := h.store.InsertRun(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{RunID: runID, Report: report})
}
