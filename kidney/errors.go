/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package kidney

import (
	"errors"
	"fmt"
)

// Age bounds accepted by Analyze.
const (
	MinAge = 1
	MaxAge = 120
)

// ErrInvalidSex is returned when the sex is neither male nor female.
var ErrInvalidSex = errors.New("sex must be male or female")

// InvalidAgeError rejects a whole analysis before any classification runs.
type InvalidAgeError struct {
	Input string
}

func (e *InvalidAgeError) Error() string {
	return fmt.Sprintf("invalid age %q: must be a whole number between %d and %d", e.Input, MinAge, MaxAge)
}

// UnknownTestError reports a test name outside the supported panel.
// It signals an integration bug, not bad user input.
type UnknownTestError struct {
	Name string
}

func (e *UnknownTestError) Error() string {
	return fmt.Sprintf("unknown lab test %q", e.Name)
}
