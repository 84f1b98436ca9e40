/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package kidney

import (
	"encoding/json"
	"strings"
)

// Sex selects the sex-specific half of a reference range and the eGFR constants.
type Sex string

// Sex values accepted by the interpreter.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex parses "male" or "female", ignoring case and surrounding spaces.
func ParseSex(raw string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(raw))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	default:
		return "", ErrInvalidSex
	}
}

// Test identifies one of the supported kidney-panel lab tests.
type Test string

// Supported tests.
const (
	TestCreatinine Test = "creatinine"
	TestUrea       Test = "urea"
	TestPotassium  Test = "potassium"
	TestSodium     Test = "sodium"
	TestPhosphorus Test = "phosphorus"
	TestCalcium    Test = "calcium"
)

// Tests lists every supported test in canonical output order.
var Tests = []Test{
	TestCreatinine,
	TestUrea,
	TestPotassium,
	TestSodium,
	TestPhosphorus,
	TestCalcium,
}

// Unit returns the fixed measurement unit of the test.
func (t Test) Unit() string {
	if def, ok := catalog[t]; ok {
		return def.unit
	}
	return ""
}

// DisplayName returns the bilingual label shown on result cards.
func (t Test) DisplayName() string {
	if def, ok := catalog[t]; ok {
		return def.name
	}
	return string(t)
}

// Status is the closed three-value classification of a lab value.
type Status int

// Status values, ordered by severity.
const (
	StatusNormal Status = iota
	StatusWarning
	StatusDanger
)

func (s Status) String() string {
	switch s {
	case StatusWarning:
		return "warning"
	case StatusDanger:
		return "danger"
	default:
		return "normal"
	}
}

// Color maps the status to the card color used by the presentation layer.
func (s Status) Color() string {
	switch s {
	case StatusWarning:
		return "amber"
	case StatusDanger:
		return "red"
	default:
		return "green"
	}
}

// Label returns the Arabic badge text for the status.
func (s Status) Label() string {
	switch s {
	case StatusWarning:
		return "يحتاج متابعة"
	case StatusDanger:
		return "خطر"
	default:
		return "طبيعي"
	}
}

// MarshalJSON encodes the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Bounds is an inclusive normal band.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ReferenceRange holds the sex-specific normal bands and optional danger thresholds.
type ReferenceRange struct {
	Male       Bounds   `json:"male"`
	Female     Bounds   `json:"female"`
	DangerLow  *float64 `json:"dangerLow,omitempty"`
	DangerHigh *float64 `json:"dangerHigh,omitempty"`
}

// For returns the normal band for the given sex.
func (r ReferenceRange) For(sex Sex) Bounds {
	if sex == SexFemale {
		return r.Female
	}
	return r.Male
}

// Patient carries the per-request context needed for classification and eGFR.
type Patient struct {
	Age int `json:"age"`
	Sex Sex `json:"sex"`
}

// Readings holds the optional value of each test. A nil field means the test
// was not performed.
type Readings struct {
	Creatinine *float64 `json:"creatinine,omitempty"`
	Urea       *float64 `json:"urea,omitempty"`
	Potassium  *float64 `json:"potassium,omitempty"`
	Sodium     *float64 `json:"sodium,omitempty"`
	Phosphorus *float64 `json:"phosphorus,omitempty"`
	Calcium    *float64 `json:"calcium,omitempty"`
}

// Get returns the supplied value for a test, or nil.
func (r Readings) Get(test Test) *float64 {
	switch test {
	case TestCreatinine:
		return r.Creatinine
	case TestUrea:
		return r.Urea
	case TestPotassium:
		return r.Potassium
	case TestSodium:
		return r.Sodium
	case TestPhosphorus:
		return r.Phosphorus
	case TestCalcium:
		return r.Calcium
	default:
		return nil
	}
}

// Set stores a value for a test. Unknown tests are ignored.
func (r *Readings) Set(test Test, value *float64) {
	switch test {
	case TestCreatinine:
		r.Creatinine = value
	case TestUrea:
		r.Urea = value
	case TestPotassium:
		r.Potassium = value
	case TestSodium:
		r.Sodium = value
	case TestPhosphorus:
		r.Phosphorus = value
	case TestCalcium:
		r.Calcium = value
	}
}

// Assessment is the classification of one supplied reading.
type Assessment struct {
	Test           Test    `json:"test"`
	Name           string  `json:"testName"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	Status         Status  `json:"status"`
	Interpretation string  `json:"interpretation"`
	Advice         string  `json:"advice"`
}

// Outcome is the aggregate result of one analysis.
type Outcome struct {
	Results    []Assessment `json:"results"`
	EGFR       *int         `json:"eGFR,omitempty"`
	EGFRStage  *Stage       `json:"eGFRStage,omitempty"`
	HasDanger  bool         `json:"hasDanger"`
	Disclaimer string       `json:"disclaimer"`
}
