package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// layerFieldCount is fixed by the provider's naming convention:
// <prefix>_<month>_<year>_<suffix>.
const layerFieldCount = 4

// LayerKey is the parsed form of a grid layer name. Month and Year keep the
// exact text from the name; use MonthNum and YearNum for ordering.
type LayerKey struct {
	Prefix string
	Month  string
	Year   string
	Suffix string
}

// LayerNameError reports a layer name that violates the naming convention,
// including the offending name so batch failures are attributable.
type LayerNameError struct {
	Name   string
	Reason string
}

func (e *LayerNameError) Error() string {
	return fmt.Sprintf("layer name %q: %s", e.Name, e.Reason)
}

// ParseLayerName splits a layer name into its four positional fields and
// validates the month and year fields. The name is the grid file's base name
// without extension. Any deviation from the convention is an error; malformed
// names indicate a provider-side violation, not an expected runtime condition.
func ParseLayerName(name string) (LayerKey, error) {
	fields := strings.Split(name, "_")
	if len(fields) != layerFieldCount {
		return LayerKey{}, &LayerNameError{
			Name:   name,
			Reason: fmt.Sprintf("want %d underscore-delimited fields, got %d", layerFieldCount, len(fields)),
		}
	}
	for i, f := range fields {
		if f == "" {
			return LayerKey{}, &LayerNameError{Name: name, Reason: fmt.Sprintf("field %d is empty", i+1)}
		}
	}

	month, err := strconv.Atoi(fields[1])
	if err != nil || month < 1 || month > 12 {
		return LayerKey{}, &LayerNameError{Name: name, Reason: fmt.Sprintf("month field %q is not a month number", fields[1])}
	}
	if _, err := strconv.Atoi(fields[2]); err != nil {
		return LayerKey{}, &LayerNameError{Name: name, Reason: fmt.Sprintf("year field %q is not numeric", fields[2])}
	}

	return LayerKey{
		Prefix: fields[0],
		Month:  fields[1],
		Year:   fields[2],
		Suffix: fields[3],
	}, nil
}

// MonthNum returns the month field as its numeric value.
func (k LayerKey) MonthNum() int {
	n, _ := strconv.Atoi(k.Month)
	return n
}

// YearNum returns the year field as its numeric value.
func (k LayerKey) YearNum() int {
	n, _ := strconv.Atoi(k.Year)
	return n
}
