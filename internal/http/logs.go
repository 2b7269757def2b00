package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/service"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

type createLogRequest struct {
	Date *string `json:"date"`
}

func (h *Handler) createLog(c *gin.Context) {
	var req createLogRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	log, err := h.logs.CreateLog(c.Request.Context(), currentUser(c).ID, date)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, logToResponse(*log, nil))
}

func (h *Handler) listLogs(c *gin.Context) {
	logs, err := h.logs.ListLogs(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]DailyLogResponse, len(logs))
	for i := range logs {
		resp[i] = logToResponse(logs[i], nil)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getLog(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}

	log, entries, err := h.logs.GetLog(c.Request.Context(), currentUser(c).ID, logID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, logToResponse(*log, entries))
}

type updateLogRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *Handler) updateLog(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}

	var req updateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return
	}

	log, err := h.logs.UpdateLogDate(c.Request.Context(), currentUser(c).ID, logID, date)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, logToResponse(*log, nil))
}

func (h *Handler) deleteLog(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}

	if err := h.logs.DeleteLog(c.Request.Context(), currentUser(c).ID, logID); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createEntryRequest struct {
	FoodID   int64   `json:"food_id" binding:"required"`
	Quantity float64 `json:"quantity"`
}

func (h *Handler) createEntry(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}

	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.logs.AddEntry(c.Request.Context(), currentUser(c).ID, logID, req.FoodID, req.Quantity)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryToResponse(*entry))
}

func (h *Handler) listEntries(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}

	entries, err := h.logs.ListEntries(c.Request.Context(), currentUser(c).ID, logID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entriesToResponse(entries))
}

func (h *Handler) getEntry(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}

	entry, err := h.logs.GetEntry(c.Request.Context(), currentUser(c).ID, logID, entryID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryToResponse(*entry))
}

type updateEntryRequest struct {
	FoodID   *int64   `json:"food_id"`
	Quantity *float64 `json:"quantity"`
}

func (h *Handler) updateEntry(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.logs.UpdateEntry(c.Request.Context(), currentUser(c).ID, logID, entryID, service.EntryUpdate{
		FoodID:   req.FoodID,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryToResponse(*entry))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	logID, ok := pathID(c, "log_id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entry_id")
	if !ok {
		return
	}

	if err := h.logs.DeleteEntry(c.Request.Context(), currentUser(c).ID, logID, entryID); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) nutritionSummary(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	summary, err := h.logs.Summary(c.Request.Context(), currentUser(c).ID, date)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, DaySummaryResponse{
		Date:     summary.Date.Format(dateLayout),
		Entries:  summary.Entries,
		Calories: summary.Calories,
		Protein:  summary.Protein,
		Carbs:    summary.Carbs,
		Fat:      summary.Fat,
	})
}

type DailyLogResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"user_id"`
	Date        string              `json:"date"`
	FoodEntries []FoodEntryResponse `json:"food_entries,omitempty"`
}

type FoodEntryResponse struct {
	ID       int64        `json:"id"`
	LogID    int64        `json:"log_id"`
	FoodID   int64        `json:"food_id"`
	Quantity float64      `json:"quantity"`
	Food     FoodResponse `json:"food"`
}

type DaySummaryResponse struct {
	Date     string  `json:"date"`
	Entries  int     `json:"entries"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func logToResponse(log domain.DailyLog, entries []domain.FoodEntry) DailyLogResponse {
	resp := DailyLogResponse{
		ID:     log.ID,
		UserID: log.UserID,
		Date:   log.Date.Format(dateLayout),
	}
	if entries != nil {
		resp.FoodEntries = entriesToResponse(entries)
	}
	return resp
}

func entriesToResponse(entries []domain.FoodEntry) []FoodEntryResponse {
	resp := make([]FoodEntryResponse, len(entries))
	for i := range entries {
		resp[i] = entryToResponse(entries[i])
	}
	return resp
}

func entryToResponse(entry domain.FoodEntry) FoodEntryResponse {
	resp := FoodEntryResponse{
		ID:       entry.ID,
		LogID:    entry.DailyLogID,
		FoodID:   entry.FoodID,
		Quantity: entry.Quantity,
	}
	if entry.Food != nil {
		resp.Food = foodToResponse(*entry.Food)
	}
	return resp
}
