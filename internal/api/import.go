package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arari/internal/importer"
	"arari/internal/model"
)

// maxImportBytes 取込リクエストの上限
const maxImportBytes = 32 << 20

// Import JSON バッチの取込
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var batch model.ImportBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON の形式が正しくありません: " + err.Error()})
		return
	}

	report, err := h.importer.Import(c.Request.Context(), batch)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, report)
	case errors.Is(err, importer.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "社員・明細のいずれも含まれていません"})
	case errors.Is(err, importer.ErrRejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "検証エラーのため取込を中止しました", "report": report})
	default:
		h.internalError(c, "取込に失敗しました", err)
	}
}

// ListImports 取込履歴（新しい順）
// GET /api/imports?limit=20
func (h *Handler) ListImports(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit は0以上の整数で指定してください"})
		return
	}

	logs, err := h.repo.ListImportLogs(c.Request.Context(), limit)
	if err != nil {
		h.internalError(c, "取込履歴の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
