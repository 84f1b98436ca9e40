/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package kidney

import (
	"fmt"
	"math"
)

// egfrConstants holds the sex-dependent CKD-EPI 2009 parameters.
type egfrConstants struct {
	kappa      float64
	alpha      float64
	multiplier float64
}

var egfrBySex = map[Sex]egfrConstants{
	SexMale:   {kappa: 0.9, alpha: -0.411, multiplier: 1.0},
	SexFemale: {kappa: 0.7, alpha: -0.329, multiplier: 1.018},
}

// EstimateEGFR applies the CKD-EPI 2009 creatinine equation without a race
// coefficient and rounds to the nearest integer (mL/min/1.73m²).
// Creatinine must be positive; callers filter readings first.
func EstimateEGFR(creatinine float64, age int, sex Sex) int {
	if !(creatinine > 0) || math.IsInf(creatinine, 0) {
		panic(fmt.Sprintf("kidney: EstimateEGFR requires positive creatinine, got %v", creatinine))
	}

	c, ok := egfrBySex[sex]
	if !ok {
		c = egfrBySex[SexMale]
	}

	ratio := creatinine / c.kappa
	egfr := 141 *
		math.Pow(math.Min(ratio, 1), c.alpha) *
		math.Pow(math.Max(ratio, 1), -1.209) *
		math.Pow(0.993, float64(age)) *
		c.multiplier

	return int(math.Round(egfr))
}

// Stage is the kidney-function band of an eGFR estimate.
type Stage string

// eGFR bands, from best to worst.
const (
	StageNormal   Stage = "normal"
	StageMild     Stage = "mild"
	StageModerate Stage = "moderate"
	StageSevere   Stage = "severe"
	StageFailure  Stage = "failure"
)

// StageForEGFR bands an eGFR value: ≥90 normal, 60–89 mild, 30–59 moderate,
// 15–29 severe, <15 failure.
func StageForEGFR(egfr int) Stage {
	switch {
	case egfr >= 90:
		return StageNormal
	case egfr >= 60:
		return StageMild
	case egfr >= 30:
		return StageModerate
	case egfr >= 15:
		return StageSevere
	default:
		return StageFailure
	}
}

// Label returns the Arabic description of the band.
func (s Stage) Label() string {
	switch s {
	case StageNormal:
		return "طبيعي"
	case StageMild:
		return "انخفاض طفيف"
	case StageModerate:
		return "انخفاض متوسط"
	case StageSevere:
		return "انخفاض شديد"
	case StageFailure:
		return "فشل كُلوي"
	default:
		return ""
	}
}

// Color maps the band to the badge color used on the results page.
func (s Stage) Color() string {
	switch s {
	case StageNormal:
		return "green"
	case StageMild:
		return "amber"
	case StageModerate:
		return "orange"
	default:
		return "red"
	}
}
