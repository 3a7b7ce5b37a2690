package v1

import (
	"github.com/gin-gonic/gin"

	"econwatch/internal/config"
	"econwatch/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	dataDir   string
	downloads *exportDownloadStore
}

// NewHandler 创建 V1 API 处理器
func NewHandler(store *store.Store, cfg *config.AppConfig, dataDir string) *Handler {
	return &Handler{
		store:     store,
		cfg:       cfg,
		dataDir:   dataDir,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 配置管理
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// 快照分析
	router.POST("/analyze", h.Analyze)

	// 分析记录
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)
	router.GET("/runs/:id/report", h.GetRunReport)
	router.DELETE("/runs/:id", h.DeleteRun)

	// 产业链趋势
	router.GET("/trends/chains/:name", h.GetChainTrend)

	// 报告导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
