package model

const (
	CategoryCommute           = "commute"
	CategoryWaterConservation = "water_conservation"
	CategoryEnergySaving      = "energy_saving"
	CategoryFoodWaste         = "food_waste"
	CategoryReduceReuse       = "reduce_reuse_recycle"
	CategoryFoodChoices       = "food_choices"
)

// MicroGoal is an immutable catalog entry: a small, single-day sustainability
// task with its impact rationale and gamification payload. Badge is empty when
// the goal awards no badge.
type MicroGoal struct {
	ID          string
	Description string
	Rationale   string
	Category    string
	XP          int
	Badge       string
}
