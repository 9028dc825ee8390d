package domain

// Operator joins multiple selected values of a single refiner.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// RefinerConfig describes one configured refiner. The order of the configured
// refiners drives both the refiner list sent to the backend and the display
// order of the returned facets.
type RefinerConfig struct {
	RefinerName  string `yaml:"refinerName" json:"refinerName"`
	DisplayValue string `yaml:"displayValue" json:"displayValue"`
	ShowExpanded bool   `yaml:"showExpanded" json:"showExpanded"`
}

// RefinementValue is a single facet value returned by the backend.
// Token is the opaque machine value, Value the human-readable label.
type RefinementValue struct {
	Token string `json:"token"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// RefinementFilter is a caller-selected filter derived from a previous
// result's facets. Values is never empty when the filter is present.
type RefinementFilter struct {
	FilterName string            `json:"filterName"`
	Operator   Operator          `json:"operator"`
	Values     []RefinementValue `json:"values"`
}

// RefinementFacet is one facet block of a result page.
type RefinementFacet struct {
	FilterName string            `json:"filterName"`
	Values     []RefinementValue `json:"values"`
}
