package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/denguescope/pkg/domain/types"
)

func TestModelIDValidation(t *testing.T) {
	tests := []struct {
		name     string
		id       types.ModelID
		expected bool
	}{
		{"Valid arima", types.ModelARIMA, true},
		{"Valid rf", types.ModelRandomForest, true},
		{"Valid ann", types.ModelNeuralNet, true},
		{"Invalid empty", types.ModelID(""), false},
		{"Invalid upper case", types.ModelID("ARIMA"), false},
		{"Invalid unknown", types.ModelID("lstm"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.id.IsValid(), tt.expected)
			if tt.expected {
				gt.NoError(t, tt.id.Validate())
			} else {
				gt.Error(t, tt.id.Validate())
			}
		})
	}
}

func TestModelIDsOrder(t *testing.T) {
	ids := types.ModelIDs()
	gt.Equal(t, ids, []types.ModelID{types.ModelARIMA, types.ModelRandomForest, types.ModelNeuralNet})
}

func TestMonthIndex(t *testing.T) {
	months := types.Months()
	gt.Equal(t, len(months), 12)

	for i, m := range months {
		gt.Equal(t, m.Index(), i)
		gt.True(t, m.IsValid())
	}

	gt.Equal(t, types.Month("Dec").Index(), 11)
	gt.Equal(t, types.Month("dec").Index(), -1)
	gt.False(t, types.Month("").IsValid())
}

func TestMonthsReturnsCopy(t *testing.T) {
	months := types.Months()
	months[0] = "XXX"

	gt.Equal(t, types.Months()[0], types.Month("Jan"))
}

func TestParseMonth(t *testing.T) {
	m, err := types.ParseMonth("Nov")
	gt.NoError(t, err).Required()
	gt.Equal(t, m, types.Month("Nov"))

	_, err = types.ParseMonth("November")
	gt.Error(t, err)
}
