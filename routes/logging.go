/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "github.com/nephroclinic/clinic/logging"

var logger = logging.Logger(logging.SourceWeb)
