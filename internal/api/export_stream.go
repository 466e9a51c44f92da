package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arari/internal/exporter"
)

// downloadTTL 生成ファイルの保持時間
const downloadTTL = 10 * time.Minute

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream xlsx 出力（SSE で進捗、完了後にダウンロード URL）
// POST /api/export/stream?period=2025年3月
func (h *Handler) ExportStream(c *gin.Context) {
	report, label, ok := h.buildReport(c)
	if !ok {
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ストリーミングに対応していません"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:      "start",
		Message:   "出力を開始します",
		Data:      map[string]any{"period": label},
		Timestamp: time.Now(),
	})

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	file, err := h.exporter.Export(report, progressFn)
	if err != nil {
		h.logger.Error("export failed", zap.String("period", label), zap.Error(err))
		send(exportProgressEvent{
			Type:      "error",
			Message:   "出力に失敗しました: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}
	defer file.Close()

	tempPath := filepath.Join(os.TempDir(), exporter.FileName(label))
	if err := file.SaveAs(tempPath); err != nil {
		h.logger.Error("save export failed", zap.String("path", tempPath), zap.Error(err))
		send(exportProgressEvent{
			Type:      "error",
			Message:   "出力ファイルの書き込みに失敗しました: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		_ = os.Remove(tempPath)
		return
	}

	token := h.downloads.put(tempPath, label, downloadTTL)
	send(exportProgressEvent{
		Type:    "done",
		Message: "出力が完了しました",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": "/api/export/download/" + token,
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport 出力済みファイルのダウンロード（1回限り）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ダウンロードリンクの有効期限が切れています"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "出力ファイルが見つかりません"})
		return
	}

	c.Header("Content-Disposition", contentDisposition(item.period))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
