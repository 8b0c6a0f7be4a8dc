package models

// CustomerProfile holds the financial form fields. Every field is optional;
// the intake endpoint persists whatever the frontend posted and absent
// values render as "None" in the prompt, never an error. Fields are `any`
// because the form sends a mix of strings and numbers.
type CustomerProfile struct {
	Name          any `json:"name,omitempty"`
	Budget        any `json:"budget,omitempty"`
	CreditScore   any `json:"creditScore,omitempty"`
	DownPayment   any `json:"downPayment,omitempty"`
	PaymentPeriod any `json:"paymentPeriod,omitempty"`
	AnnualMileage any `json:"annualMileage,omitempty"`
	LeaseMonths   any `json:"leaseMonths,omitempty"`
}

// QuizSelection is the most recent set of persona cards picked in the style
// quiz, in selection order.
type QuizSelection struct {
	SelectedCards []string `json:"selectedCards"`
}

// StyleCard is a named style/preference archetype used to bias
// recommendations. Static reference data, not persisted per user.
type StyleCard struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	VehicleTypes []string `json:"vehicle_types"`
	Features     []string `json:"features"`
	Preferences  []string `json:"preferences"`
}
