package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) systemStats(c *gin.Context) {
	stats, err := h.stats.SystemStats(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"system_stats": stats})
}

func (h *Handler) usersActivity(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	activity, err := h.stats.UsersActivity(c.Request.Context(), days, limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	users := make([]gin.H, 0, len(activity))
	for _, a := range activity {
		users = append(users, gin.H{
			"user_id":       a.UserID,
			"username":      a.Username,
			"email":         a.Email,
			"logs_count":    a.Logs,
			"entries_count": a.Entries,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"time_period":        "Last " + strconv.Itoa(days) + " days",
		"total_active_users": len(users),
		"users":              users,
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) createExport(c *gin.Context) {
	result, err := h.stats.Export(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": result.Key, "location": result.Location})
}

// listExports returns prior snapshots with short-lived download URLs.
func (h *Handler) listExports(c *gin.Context) {
	objects, err := h.stats.ListExports(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]ExportObjectResponse, 0, len(objects))
	for _, obj := range objects {
		item := ExportObjectResponse{Key: obj.Key, Size: obj.Size}
		if obj.LastModified != nil && !obj.LastModified.IsZero() {
			v := obj.LastModified.Format(time.RFC3339)
			item.LastModified = &v
		}
		if url, err := h.stats.ExportURL(c.Request.Context(), obj.Key, 15*time.Minute); err == nil {
			item.DownloadURL = url
		}
		resp = append(resp, item)
	}
	c.JSON(http.StatusOK, resp)
}

type ExportObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
	DownloadURL  string  `json:"download_url,omitempty"`
}
