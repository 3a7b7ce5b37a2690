package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"econwatch/internal/config"
)

// ConfigResponse 配置响应（只暴露运行期可调的部分）
type ConfigResponse struct {
	TopN int `json:"topN"`
}

// UpdateConfigRequest 配置更新请求体
type UpdateConfigRequest struct {
	TopN *int `json:"topN"`
}

// GetConfig 读取报告配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{TopN: h.cfg.Report.TopN})
}

// UpdateConfig 更新报告配置并写回 config.toml
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TopN != nil {
		if *req.TopN < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "topN 必须 >= 1"})
			return
		}
		h.cfg.Report.TopN = *req.TopN
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ConfigResponse{TopN: h.cfg.Report.TopN})
}
