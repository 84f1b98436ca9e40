/*
 * Copyright 2026 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"os"
	"strings"

	"github.com/flamego/template"
)

const (
	defaultSiteTitle      = "عيادة د. نهى جمال لأمراض وزراعة الكلى"
	publicSiteTitleEnvVar = "PUBLIC_SITE_TITLE"
)

func setPublicSiteTitle(data template.Data) {
	title := strings.TrimSpace(os.Getenv(publicSiteTitleEnvVar))
	if title == "" {
		title = defaultSiteTitle
	}

	data["PageTitle"] = title
}

func setPageTitle(data template.Data, page string) {
	setPublicSiteTitle(data)

	if page != "" {
		data["PageTitle"] = page + " | " + data["PageTitle"].(string)
	}
}
