/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "github.com/nephroclinic/clinic/logging"

var appLogger = logging.Logger(logging.SourceApp)
var whatsappLogger = logging.Logger(logging.SourceWhatsApp)
var requestStdLogger = logging.StdLogger(logging.SourceWebRequest)
