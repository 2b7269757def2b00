package domain

// Food is a shared catalog item. Nutritional values are per serving.
type Food struct {
	ID           int64
	Name         string
	Manufacturer string
	ServingSize  float64
	Unit         string
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
}
