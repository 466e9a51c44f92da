package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// internalError 500 を返し詳細はログへ
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
