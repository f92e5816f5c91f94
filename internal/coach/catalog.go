package coach

import (
	"errors"

	"github.com/ecopathway/ecocoach/internal/model"
)

var ErrGoalNotFound = errors.New("micro-goal not found")

// catalog is the fixed table of micro-goals. Order matters: the selector
// falls back to scanning it in definition order.
var catalog = []model.MicroGoal{
	{
		ID:          "shorter_shower",
		Description: "Take a 5-minute shorter shower today",
		Rationale:   "A shorter shower saves around 40 liters of water. Small actions add up fast!",
		Category:    model.CategoryWaterConservation,
		XP:          5,
		Badge:       "Water Saver",
	},
	{
		ID:          "reusable_shopping_bag",
		Description: "Bring your own bag when shopping today",
		Rationale:   "A single reusable bag can replace hundreds of plastic bags over its lifetime and keeps plastic out of oceans.",
		Category:    model.CategoryReduceReuse,
		XP:          5,
		Badge:       "Zero Waste Hero",
	},
	{
		ID:          "walk_short_trip",
		Description: "Walk or bike for one short trip instead of driving",
		Rationale:   "Short car trips are up to 60% more polluting per mile. Active transport cuts emissions and boosts health!",
		Category:    model.CategoryCommute,
		XP:          10,
		Badge:       "Pedal Power",
	},
	{
		ID:          "lights_off",
		Description: "Turn off lights when leaving a room today",
		Rationale:   "Lights left on unnecessarily account for 5-10% of home energy use.",
		Category:    model.CategoryEnergySaving,
		XP:          5,
		Badge:       "Watt Watcher",
	},
	{
		ID:          "air_dry_laundry",
		Description: "Air dry one load of laundry instead of using the dryer",
		Rationale:   "The dryer is one of the most energy-hungry appliances at home; one air-dried load saves about 2 kWh.",
		Category:    model.CategoryEnergySaving,
		XP:          10,
	},
	{
		ID:          "plant_based_meal",
		Description: "Try one plant-based meal today",
		Rationale:   "One meatless meal can save around 1,000 liters of water and reduce your carbon footprint by 1 kg!",
		Category:    model.CategoryFoodChoices,
		XP:          10,
		Badge:       "Green Eater",
	},
	{
		ID:          "compost_scraps",
		Description: "Compost your food scraps today",
		Rationale:   "Food waste in landfill produces methane; composting turns it into soil instead.",
		Category:    model.CategoryFoodWaste,
		XP:          10,
		Badge:       "Soil Builder",
	},
}

var catalogByID = func() map[string]*model.MicroGoal {
	m := make(map[string]*model.MicroGoal, len(catalog))
	for i := range catalog {
		m[catalog[i].ID] = &catalog[i]
	}
	return m
}()

// GoalByID looks up a catalog entry.
func GoalByID(id string) (*model.MicroGoal, error) {
	goal, ok := catalogByID[id]
	if !ok {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

// GoalIDs returns the catalog identifiers in definition order.
func GoalIDs() []string {
	ids := make([]string, len(catalog))
	for i, g := range catalog {
		ids[i] = g.ID
	}
	return ids
}

// Goals returns the catalog entries in definition order.
func Goals() []model.MicroGoal {
	out := make([]model.MicroGoal, len(catalog))
	copy(out, catalog)
	return out
}
