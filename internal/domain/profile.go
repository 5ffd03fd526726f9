package domain

import "strings"

// DataItemUIDField is the profile item field carrying the resolved drilldown UID.
const DataItemUIDField = "dataItemUid"

// UnitKgPerYear is the unit AMEE reports CO2 amounts in.
const UnitKgPerYear = "kg/year"

// Values are the fields submitted when creating a profile item.
type Values map[string]any

// Merge returns a new map holding v overlaid by each of others in turn.
func (v Values) Merge(others ...Values) Values {
	merged := make(Values, len(v))
	for name, value := range v {
		merged[name] = value
	}
	for _, other := range others {
		for name, value := range other {
			merged[name] = value
		}
	}

	return merged
}

// ItemSpec describes one profile item for batch creation.
type ItemSpec struct {
	Path    string
	Choices Choices
	Values  Values
}

type Amount struct {
	Unit  string  `mapstructure:"unit" json:"unit"`
	Value float64 `mapstructure:"value" json:"value"`
}

// ValidatePath checks that a category or API path is root-relative.
func ValidatePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return &InvalidPathError{Path: path}
	}

	return nil
}
