package domain

import "time"

// DailyLog groups the food a user consumed on a single calendar date. A user
// has at most one log per date.
type DailyLog struct {
	ID     int64
	UserID int64
	Date   time.Time
}

// FoodEntry records a quantity of a catalog food consumed within a daily log.
// Quantity is expressed in servings of the referenced food.
type FoodEntry struct {
	ID         int64
	DailyLogID int64
	FoodID     int64
	Quantity   float64
	Food       *Food
}

// DaySummary aggregates the nutritional totals of one daily log.
type DaySummary struct {
	Date     time.Time
	Entries  int
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}
