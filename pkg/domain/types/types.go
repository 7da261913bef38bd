package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ModelID identifies one of the pre-trained forecasting models
type ModelID string

const (
	ModelARIMA        ModelID = "arima"
	ModelRandomForest ModelID = "rf"
	ModelNeuralNet    ModelID = "ann"
)

// ModelIDs returns every model in display order
func ModelIDs() []ModelID {
	return []ModelID{ModelARIMA, ModelRandomForest, ModelNeuralNet}
}

// String returns the string representation
func (id ModelID) String() string {
	return string(id)
}

// IsValid checks if the model ID is one of the known models
func (id ModelID) IsValid() bool {
	switch id {
	case ModelARIMA, ModelRandomForest, ModelNeuralNet:
		return true
	default:
		return false
	}
}

// Validate returns an error for unknown model IDs
func (id ModelID) Validate() error {
	if !id.IsValid() {
		return goerr.New("unknown model ID", goerr.V("model_id", string(id)))
	}
	return nil
}

// TabID identifies a tab or a nested tab of the dashboard
type TabID string

const (
	TabOverview   TabID = "overview"
	TabPrediction TabID = "prediction"
	TabModeling   TabID = "modeling"
	TabAbout      TabID = "about"

	// Model Performance tabs
	TabComparison   TabID = "comparison"
	TabArchitecture TabID = "architecture"

	// About tabs
	TabResearch  TabID = "research"
	TabTechnical TabID = "technical"
	TabImpact    TabID = "impact"
	TabAwards    TabID = "awards"
	TabGallery   TabID = "gallery"
)

// String returns the string representation
func (id TabID) String() string {
	return string(id)
}

// Month is a three letter calendar month label such as "Jan"
type Month string

var calendar = []Month{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Months returns the twelve month labels in calendar order
func Months() []Month {
	result := make([]Month, len(calendar))
	copy(result, calendar)
	return result
}

// String returns the string representation
func (m Month) String() string {
	return string(m)
}

// Index returns the zero based calendar position, or -1 for unknown labels
func (m Month) Index() int {
	for i, c := range calendar {
		if c == m {
			return i
		}
	}
	return -1
}

// IsValid checks if the label is a calendar month
func (m Month) IsValid() bool {
	return m.Index() >= 0
}

// ParseMonth converts a label into a Month
func ParseMonth(s string) (Month, error) {
	m := Month(s)
	if !m.IsValid() {
		return "", goerr.New("invalid month label", goerr.V("month", s))
	}
	return m, nil
}
