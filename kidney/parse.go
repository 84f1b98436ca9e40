/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package kidney

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseReadings converts raw form values keyed by test name into Readings.
// Blank, non-numeric, non-finite, zero and negative values are left unset.
// Keys that are not supported tests are ignored.
func ParseReadings(form map[string]string) Readings {
	var readings Readings

	for _, test := range Tests {
		raw, ok := form[string(test)]
		if !ok {
			continue
		}

		readings.Set(test, parsePositive(raw))
	}

	return readings
}

// ParseValues converts decoded JSON values keyed by test name into Readings.
// Numbers and numeric strings are accepted. Any other value is left unset,
// as are non-finite, zero and negative numbers.
func ParseValues(values map[string]any) Readings {
	var readings Readings

	for _, test := range Tests {
		raw, ok := values[string(test)]
		if !ok {
			continue
		}

		readings.Set(test, parseValue(raw))
	}

	return readings
}

func parseValue(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil
		}
		return &v
	case json.Number:
		return parsePositive(v.String())
	case string:
		return parsePositive(v)
	default:
		return nil
	}
}

func parsePositive(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	// Accept a decimal comma.
	raw = strings.Replace(raw, ",", ".", 1)
	raw = strings.Replace(raw, "٫", ".", 1)

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return nil
	}

	return &value
}
