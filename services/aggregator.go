package services

import (
	"fmt"
	"strings"

	"github.com/vishyyyyyyyyy/ToyoQuest/models"
	"github.com/vishyyyyyyyyy/ToyoQuest/utils"
)

// NoPreferencesPhrase is the fixed sentence used when the customer picked
// no cards in the quiz.
const NoPreferencesPhrase = "no specific preferences provided"

// PreferenceSummary is the merged view of all persona cards a customer
// selected. Vehicle types and features are deduplicated in first-seen card
// order; preferences are concatenated in card order, duplicates kept.
type PreferenceSummary struct {
	Cards        []models.StyleCard
	VehicleTypes []string
	Features     []string
	Preferences  []string
}

// AggregatePreferences resolves the selected card names against the static
// catalog and merges their tags. Unknown names resolve to placeholder cards
// and never fail.
func AggregatePreferences(selection models.QuizSelection) PreferenceSummary {
	var summary PreferenceSummary

	var vehicleTypes, features []string
	for _, name := range selection.SelectedCards {
		card := lookupCard(name)
		summary.Cards = append(summary.Cards, card)
		vehicleTypes = append(vehicleTypes, card.VehicleTypes...)
		features = append(features, card.Features...)
		summary.Preferences = append(summary.Preferences, card.Preferences...)
	}
	summary.VehicleTypes = utils.DeduplicateSlice(vehicleTypes)
	summary.Features = utils.DeduplicateSlice(features)

	return summary
}

// Sentence renders the one-line natural-language preference summary.
func (p PreferenceSummary) Sentence() string {
	if len(p.Cards) == 0 {
		return NoPreferencesPhrase
	}
	return fmt.Sprintf("looking for vehicles that are %s with a focus on %s, particularly interested in %s",
		strings.Join(p.Features, ", "),
		strings.Join(p.Preferences, ", "),
		strings.Join(p.VehicleTypes, ", "))
}

// renderScalar renders an optional profile value for the prompt. Absent
// values become the placeholder "None" rather than an error.
func renderScalar(v any) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%v", v)
}

// renderCards dumps the resolved card details for the prompt.
func renderCards(cards []models.StyleCard) string {
	if len(cards) == 0 {
		return "  (none selected)"
	}
	var b strings.Builder
	for _, card := range cards {
		fmt.Fprintf(&b, "  %s: %s\n", card.Name, card.Description)
		fmt.Fprintf(&b, "    vehicle types: %s\n", strings.Join(card.VehicleTypes, ", "))
		fmt.Fprintf(&b, "    features: %s\n", strings.Join(card.Features, ", "))
		fmt.Fprintf(&b, "    preferences: %s\n", strings.Join(card.Preferences, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildRecommendationPrompt assembles the structured customer-profile
// prompt for the one-shot request. It instructs the model to answer with
// exactly three ranked recommendations in a fixed JSON shape and nothing
// else.
func BuildRecommendationPrompt(profile models.CustomerProfile, summary PreferenceSummary) string {
	var b strings.Builder

	b.WriteString("You are a Toyota vehicle matching expert. Based on this complete customer profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", renderScalar(profile.Name))
	fmt.Fprintf(&b, "- Budget Range: %s\n", renderScalar(profile.Budget))
	fmt.Fprintf(&b, "- Credit Score Range: %s\n", renderScalar(profile.CreditScore))
	fmt.Fprintf(&b, "- Down Payment: $%s\n", renderScalar(profile.DownPayment))
	fmt.Fprintf(&b, "- Payment Period: %s months\n", renderScalar(profile.PaymentPeriod))
	fmt.Fprintf(&b, "- Annual Mileage: %sk miles\n", renderScalar(profile.AnnualMileage))
	fmt.Fprintf(&b, "- Lease Duration: %s months\n", renderScalar(profile.LeaseMonths))
	fmt.Fprintf(&b, "- Style Preferences: %s\n", summary.Sentence())
	fmt.Fprintf(&b, "- User's life style:\n%s\n", renderCards(summary.Cards))
	b.WriteString("Using the Toyota vehicle data provided above and their profile, " +
		"recommend vehicles within their budget and financing terms that align " +
		"with their style preferences and lifestyle and are closest to their budget.\n\n")

	b.WriteString(`Return exactly three ranked recommendations as a JSON object in this exact shape:
{"recommendations": [
  {"rank": 1, "base_model": "...", "trim_name": "...", "reason": "..."},
  {"rank": 2, "base_model": "...", "trim_name": "...", "reason": "..."},
  {"rank": 3, "base_model": "...", "trim_name": "...", "reason": "..."}
]}
Do not include any text, markdown or explanation outside the JSON object.`)

	return b.String()
}
