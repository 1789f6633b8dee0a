package validation

import (
	"github.com/spf13/cast"
)

// Kwargs is a validated keyword set handed to a Constructor. The getters
// assume the schema already coerced the values.
type Kwargs map[string]any

func (k Kwargs) Float(name string) float64 { return cast.ToFloat64(k[name]) }
func (k Kwargs) Int(name string) int       { return cast.ToInt(k[name]) }
func (k Kwargs) Bool(name string) bool     { return cast.ToBool(k[name]) }
func (k Kwargs) String(name string) string { return cast.ToString(k[name]) }

// Floats returns a float slice, converting element-wise when the value is
// a generic slice.
func (k Kwargs) Floats(name string) []float64 {
	switch v := k[name].(type) {
	case []float64:
		return v
	case []any:
		out := make([]float64, len(v))
		for i, e := range v {
			out[i] = cast.ToFloat64(e)
		}
		return out
	case nil:
		return nil
	default:
		return []float64{cast.ToFloat64(v)}
	}
}
