/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package kidney

import (
	"math"
	"strconv"
)

// Classify grades a single value against the test's reference range.
//
// Danger thresholds are checked before the normal band, so a value past a
// danger limit is never reported as a mere warning. Warning and danger share
// the same directional text; severity is carried only by the status.
func Classify(test Test, value float64, sex Sex) (Assessment, error) {
	def, ok := catalog[test]
	if !ok {
		return Assessment{}, &UnknownTestError{Name: string(test)}
	}

	result := Assessment{
		Test:           test,
		Name:           def.name,
		Value:          value,
		Unit:           def.unit,
		Status:         StatusNormal,
		Interpretation: def.interpretation.normal,
		Advice:         normalAdvice,
	}

	band := def.ranges.For(sex)

	switch {
	case def.ranges.DangerLow != nil && value <= *def.ranges.DangerLow:
		result.Status = StatusDanger
		result.Interpretation = def.interpretation.low
		result.Advice = def.advice.low
	case def.ranges.DangerHigh != nil && value >= *def.ranges.DangerHigh:
		result.Status = StatusDanger
		result.Interpretation = def.interpretation.high
		result.Advice = def.advice.high
	case value < band.Min:
		result.Status = StatusWarning
		result.Interpretation = def.interpretation.low
		result.Advice = def.advice.low
	case value > band.Max:
		result.Status = StatusWarning
		result.Interpretation = def.interpretation.high
		result.Advice = def.advice.high
	}

	return result, nil
}

// ValidateAge checks the age bounds of a patient.
func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return &InvalidAgeError{Input: strconv.Itoa(age)}
	}
	return nil
}

// ParseAge parses a whole-number age from form or query input.
func ParseAge(raw string) (int, error) {
	age, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InvalidAgeError{Input: raw}
	}
	if err := ValidateAge(age); err != nil {
		return 0, err
	}
	return age, nil
}

// AgeFromNumber converts a decoded JSON number into an age, rejecting
// fractional values.
func AgeFromNumber(n float64) (int, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, &InvalidAgeError{Input: strconv.FormatFloat(n, 'f', -1, 64)}
	}
	if n < MinAge || n > MaxAge {
		return 0, &InvalidAgeError{Input: strconv.FormatFloat(n, 'f', -1, 64)}
	}
	return int(n), nil
}

// Analyze classifies every supplied reading in canonical order and derives
// eGFR when a positive creatinine value is present. Missing, zero and
// negative readings are skipped silently.
func Analyze(p Patient, r Readings) (Outcome, error) {
	if err := ValidateAge(p.Age); err != nil {
		return Outcome{}, err
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return Outcome{}, ErrInvalidSex
	}

	outcome := Outcome{
		Results:    make([]Assessment, 0, len(Tests)),
		Disclaimer: Disclaimer,
	}

	for _, test := range Tests {
		value, ok := supplied(r.Get(test))
		if !ok {
			continue
		}

		result, err := Classify(test, value, p.Sex)
		if err != nil {
			return Outcome{}, err
		}

		if result.Status == StatusDanger {
			outcome.HasDanger = true
		}
		outcome.Results = append(outcome.Results, result)
	}

	if creatinine, ok := supplied(r.Creatinine); ok {
		egfr := EstimateEGFR(creatinine, p.Age, p.Sex)
		stage := StageForEGFR(egfr)
		outcome.EGFR = &egfr
		outcome.EGFRStage = &stage
	}

	return outcome, nil
}

func supplied(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return 0, false
	}
	return *v, true
}
