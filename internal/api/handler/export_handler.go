package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportQuizResults 导出公司答题结果
// GET /export/quiz-results?company_id=xxx
func (h *ExportHandler) ExportQuizResults(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	companyID := c.Query("company_id")
	if companyID == "" {
		response.BadRequest(c, 10001, "company_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportQuizResults(c.Request.Context(), companyID, userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 12001, "公司不存在")
	case errors.Is(err, service.ErrNotCompanyAdmin):
		response.Forbidden(c, 12002, "仅所有者或管理员可导出")
	case errors.Is(err, service.ErrExportNoAttempts):
		response.NotFound(c, 16101, "该公司暂无答题记录")
	default:
		response.InternalError(c)
	}
}
