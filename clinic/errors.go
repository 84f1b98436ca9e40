/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package clinic

import "errors"

var errNoLocations = errors.New("no clinic locations configured")
