package character

import "fmt"

// Warning reports a recoverable data-integrity problem found during a derive pass.
// The derived value named by Field was left at its prior value.
type Warning struct {
	Field   string `yaml:"field"`
	Message string `yaml:"message"`
}

// String formats the warning as "field: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

func warnf(field, format string, args ...any) Warning {
	return Warning{Field: field, Message: fmt.Sprintf(format, args...)}
}

// undefinedStat builds the warning emitted when a derivation needs an unusable characteristic.
func undefinedStat(field string, stats ...Stat) Warning {
	return warnf(field, "requires %v defined and >= 1", stats)
}
