/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/nephroclinic/clinic/clinic"
)

var writeVCardFn = clinic.WriteVCard

// ContactVCard serves the clinic contact card.
func ContactVCard(c flamego.Context) {
	var buf bytes.Buffer
	if err := writeVCardFn(&buf); err != nil {
		logger.Error("Error encoding vCard", "error", err)
		c.ResponseWriter().WriteHeader(http.StatusInternalServerError)
		return
	}

	header := c.ResponseWriter().Header()
	header.Set("Content-Type", "text/vcard; charset=utf-8")
	header.Set("Content-Disposition", `attachment; filename="dr-noha-gamal.vcf"`)

	c.ResponseWriter().WriteHeader(http.StatusOK)
	_, _ = c.ResponseWriter().Write(buf.Bytes())
}

// LocationsMap serves the rendered clinic locations map.
func LocationsMap(c flamego.Context) {
	path := currentConfig().LocationsMapPath

	c.ResponseWriter().Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(c.ResponseWriter(), c.Request().Request, path)
}
