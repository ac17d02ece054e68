package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hris/backend/internal/dto"
	"hris/backend/internal/service"
	"hris/backend/internal/shiftplan"
	"hris/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ShiftPlanHandler 排班计划 HTTP 处理器
type ShiftPlanHandler struct {
	svc service.ShiftPlanService
}

// NewShiftPlanHandler 创建 ShiftPlanHandler
func NewShiftPlanHandler(svc service.ShiftPlanService) *ShiftPlanHandler {
	return &ShiftPlanHandler{svc: svc}
}

// ListMonthlyShifts 查询月度排班
// GET /api/v1/shift-plans?month=YYYY-MM
func (h *ShiftPlanHandler) ListMonthlyShifts(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 30006, "月份格式无效，应为 YYYY-MM")
		return
	}

	list, err := h.svc.ListMonthlyShifts(c.Request.Context(), tenantID, q.Month)
	if err != nil {
		handleShiftPlanError(c, err)
		return
	}
	response.OK(c, list)
}

// DownloadTemplate 下载空白排班模板
// GET /api/v1/shift-plans/template?month=YYYY-MM
func (h *ShiftPlanHandler) DownloadTemplate(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 30006, "月份格式无效，应为 YYYY-MM")
		return
	}

	buf, filename, err := h.svc.GenerateTemplate(c.Request.Context(), tenantID, q.Month)
	if err != nil {
		handleShiftPlanError(c, err)
		return
	}
	writeWorkbook(c, buf, filename)
}

// ExportShiftPlan 导出已保存的排班
// GET /api/v1/shift-plans/export?month=YYYY-MM
func (h *ShiftPlanHandler) ExportShiftPlan(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 30006, "月份格式无效，应为 YYYY-MM")
		return
	}

	buf, filename, err := h.svc.ExportShiftPlan(c.Request.Context(), tenantID, q.Month)
	if err != nil {
		handleShiftPlanError(c, err)
		return
	}
	writeWorkbook(c, buf, filename)
}

// UploadShiftPlan 上传排班文件
// POST /api/v1/shift-plans/upload（multipart/form-data, field="file"）
func (h *ShiftPlanHandler) UploadShiftPlan(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return
		}
		response.BadRequest(c, 10001, "请上传排班文件（字段名 file）")
		return
	}
	defer file.Close()

	resp, err := h.svc.UploadShiftPlan(c.Request.Context(), userID, file, header.Filename)
	if err != nil {
		handleShiftPlanError(c, err)
		return
	}
	response.OK(c, resp)
}

func writeWorkbook(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func handleShiftPlanError(c *gin.Context, err error) {
	var (
		readErr    *shiftplan.FileReadError
		formatErr  *shiftplan.FormatError
		invalidErr *shiftplan.ValidationError
		emptyErr   *shiftplan.EmptyResultError
		persistErr *shiftplan.PersistenceError
	)

	switch {
	case errors.As(err, &readErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 30001, "文件读取失败", err.Error())
	case errors.As(err, &formatErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 30002, "模板格式无效", err.Error())
	case errors.As(err, &invalidErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 30003, "排班数据校验失败", err.Error())
	case errors.As(err, &emptyErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 30004, "文件中无有效排班数据", err.Error())
	case errors.As(err, &persistErr):
		response.ErrorWithDetails(c, http.StatusInternalServerError, 30005, "排班保存失败",
			fmt.Sprintf("committed=%d: %v", persistErr.Committed, persistErr.Err))
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 30006, err.Error())
	case errors.Is(err, service.ErrUnsupportedFile):
		response.BadRequest(c, 30007, err.Error())
	default:
		response.InternalError(c)
	}
}
