package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/service"
)

type foodRequest struct {
	Name         string  `json:"name" binding:"required"`
	Manufacturer string  `json:"manufacturer" binding:"required"`
	ServingSize  float64 `json:"serving_size"`
	Unit         string  `json:"unit" binding:"required"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
}

type updateFoodRequest struct {
	Name         *string  `json:"name"`
	Manufacturer *string  `json:"manufacturer"`
	ServingSize  *float64 `json:"serving_size"`
	Unit         *string  `json:"unit"`
	Calories     *float64 `json:"calories"`
	Protein      *float64 `json:"protein"`
	Carbs        *float64 `json:"carbs"`
	Fat          *float64 `json:"fat"`
}

// listFoods serves the catalog; a non-empty query parameter switches to
// substring search.
func (h *Handler) listFoods(c *gin.Context) {
	if query := c.Query("query"); query != "" {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		foods, err := h.foods.Search(c.Request.Context(), query, limit)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, foodsToResponse(foods))
		return
	}

	skip, limit, ok := pagination(c, 100)
	if !ok {
		return
	}
	foods, err := h.foods.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, foodsToResponse(foods))
}

func (h *Handler) getFood(c *gin.Context) {
	id, ok := pathID(c, "food_id")
	if !ok {
		return
	}

	food, err := h.foods.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, foodToResponse(*food))
}

func (h *Handler) createFood(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.foods.Create(c.Request.Context(), service.FoodInput{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		ServingSize:  req.ServingSize,
		Unit:         req.Unit,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, foodToResponse(*food))
}

func (h *Handler) updateFood(c *gin.Context) {
	id, ok := pathID(c, "food_id")
	if !ok {
		return
	}

	var req updateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.foods.Update(c.Request.Context(), id, service.FoodUpdate{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		ServingSize:  req.ServingSize,
		Unit:         req.Unit,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, foodToResponse(*food))
}

func (h *Handler) deleteFood(c *gin.Context) {
	id, ok := pathID(c, "food_id")
	if !ok {
		return
	}

	if err := h.foods.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type FoodResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	ServingSize  float64 `json:"serving_size"`
	Unit         string  `json:"unit"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
}

func foodToResponse(food domain.Food) FoodResponse {
	return FoodResponse{
		ID:           food.ID,
		Name:         food.Name,
		Manufacturer: food.Manufacturer,
		ServingSize:  food.ServingSize,
		Unit:         food.Unit,
		Calories:     food.Calories,
		Protein:      food.Protein,
		Carbs:        food.Carbs,
		Fat:          food.Fat,
	}
}

func foodsToResponse(foods []domain.Food) []FoodResponse {
	resp := make([]FoodResponse, len(foods))
	for i := range foods {
		resp[i] = foodToResponse(foods[i])
	}
	return resp
}
