package domain

// Vertical is a named, pre-configured query scope variant used to present the
// same user query against a different slice of the index.
type Vertical struct {
	Key           string `yaml:"key" json:"key"`
	Label         string `yaml:"label" json:"label"`
	QueryTemplate string `yaml:"queryTemplate" json:"queryTemplate"`
	SourceID      string `yaml:"sourceId" json:"sourceId"`
}

// VerticalCount is the result row count for one vertical.
type VerticalCount struct {
	VerticalKey string `json:"verticalKey"`
	Count       int    `json:"count"`
}
