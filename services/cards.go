package services

import "github.com/vishyyyyyyyyy/ToyoQuest/models"

// cardCatalog is the fixed set of persona cards the style quiz offers.
// The names match the card titles rendered by the quiz frontend.
var cardCatalog = map[string]models.StyleCard{
	"Sleek Sporty": {
		Name:         "Sleek Sporty",
		Description:  "For sports cars and sedans",
		VehicleTypes: []string{"sports car", "sedan"},
		Features:     []string{"aerodynamic", "performance-oriented"},
		Preferences:  []string{"speed", "style"},
	},
	"Family Roomy": {
		Name:         "Family Roomy",
		Description:  "For SUVs and minivans",
		VehicleTypes: []string{"SUV", "minivan"},
		Features:     []string{"spacious", "comfortable"},
		Preferences:  []string{"safety", "space"},
	},
	"Gas1 Mood": {
		Name:         "Gas1 Mood",
		Description:  "For Hybrid and Electric vehicles",
		VehicleTypes: []string{"hybrid", "electric"},
		Features:     []string{"fuel-efficient", "eco-friendly"},
		Preferences:  []string{"economy", "sustainability"},
	},
	"Gas2 Whatev": {
		Name:         "Gas2 Whatev",
		Description:  "For Gasoline vehicles",
		VehicleTypes: []string{"gasoline"},
		Features:     []string{"traditional", "versatile"},
		Preferences:  []string{"conventional", "reliability"},
	},
	"Speed Demon": {
		Name:         "Speed Demon",
		Description:  "High miles per gallon and fuel efficient",
		VehicleTypes: []string{"efficient performance"},
		Features:     []string{"fuel efficiency", "performance"},
		Preferences:  []string{"economy", "speed"},
	},
	"Practical Life": {
		Name:         "Practical Life",
		Description:  "Lower mileage, more performance",
		VehicleTypes: []string{"performance vehicle"},
		Features:     []string{"powerful", "dynamic"},
		Preferences:  []string{"performance", "excitement"},
	},
	"Chill": {
		Name:         "Chill",
		Description:  "For smooth city cruisers like sedans and hatchbacks",
		VehicleTypes: []string{"sedan", "hatchback"},
		Features:     []string{"comfortable", "city-friendly"},
		Preferences:  []string{"comfort", "practicality"},
	},
	"Chaos": {
		Name:         "Chaos",
		Description:  "For rugged rides like SUVs and trucks",
		VehicleTypes: []string{"SUV", "truck"},
		Features:     []string{"rugged", "off-road capable"},
		Preferences:  []string{"adventure", "capability"},
	},
}

// lookupCard resolves a card name from the quiz. Unknown names map to a
// placeholder card instead of failing.
func lookupCard(name string) models.StyleCard {
	if card, ok := cardCatalog[name]; ok {
		return card
	}
	return models.StyleCard{
		Name:         name,
		Description:  "Unknown card type",
		VehicleTypes: []string{},
		Features:     []string{},
		Preferences:  []string{},
	}
}
