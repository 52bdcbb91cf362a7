package validators

import (
	"regexp"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
	"github.com/tidwall/gjson"
)

// pointPattern matches the textual form of a geometric point: "(x, y)".
var pointPattern = regexp.MustCompile(`^\s*\(\s*[+-]?\d+\.?\d*\s*,\s*[+-]?\d+\.?\d*\s*\)\s*$`)

func (v *TypeCompatibilityValidator) ValidateSemiStructured(col models.ColumnDescriptor, values []any) bool {
	switch col.Type {
	case models.JSON:
		return validJSONValues(values)
	case models.Point:
		return validPointValues(values)
	default:
		return true
	}
}

// validJSONValues accepts structured values as they are and strings that
// parse as JSON text.
func validJSONValues(values []any) bool {
	for _, value := range values {
		switch x := value.(type) {
		case nil:
		case map[string]any, []any:
		case string:
			if !gjson.Valid(x) {
				return false
			}
		case []byte:
			if !gjson.ValidBytes(x) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// validPointValues accepts two-component numeric pairs and "(x,y)" strings.
func validPointValues(values []any) bool {
	for _, value := range values {
		switch x := value.(type) {
		case nil:
		case string:
			if !pointPattern.MatchString(x) {
				return false
			}
		case []any:
			if !numericPair(x) {
				return false
			}
		case [2]float64:
		case []float64:
			if len(x) != 2 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func numericPair(pair []any) bool {
	if len(pair) != 2 {
		return false
	}
	for _, c := range pair {
		if _, ok := utils.ToFloat64(c); !ok {
			return false
		}
	}
	return true
}
