package domain

// DietItem is a tracked food entry, e.g. {"Oats", "150g"}.
type DietItem struct {
	ID       string `json:"id"`
	FoodName string `json:"foodName"`
	Quantity string `json:"quantity"` // Free-form
}
