/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/clinic"
	"github.com/nephroclinic/clinic/db"
	"github.com/nephroclinic/clinic/whatsapp"
)

const landingReviewLimit = 6

var listApprovedReviewsFn = db.ListApprovedReviews

var giftCodePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

var nowFn = time.Now

// Home renders the public landing page with the booking and contact forms.
func Home(c flamego.Context, t template.Template, data template.Data) {
	setPublicSiteTitle(data)
	setClinicData(data)

	data["IsHome"] = true
	data["Services"] = clinic.Services()
	data["Credentials"] = clinic.Credentials()
	data["TimeSlots"] = clinic.TimeSlots()
	data["MinBookingDate"] = today().Format(dateLayout)

	if code := strings.ToUpper(strings.TrimSpace(c.Query("gift"))); giftCodePattern.MatchString(code) {
		data["GiftCode"] = code
	}

	reviews, err := listApprovedReviewsFn(c.Request().Context(), landingReviewLimit)
	if err != nil {
		logger.Error("Error fetching approved reviews", "error", err)
	} else {
		data["Reviews"] = reviews
	}

	t.HTML(http.StatusOK, "home")
}

func setClinicData(data template.Data) {
	cfg := currentConfig()

	data["DoctorName"] = clinic.DoctorName
	data["DoctorTitle"] = clinic.DoctorTitle
	data["ClinicPhone"] = clinic.Phone
	data["ClinicWhatsAppURL"] = whatsapp.DeepLink(cfg.ClinicWhatsApp, "")
	data["Locations"] = clinic.Locations()
}

func today() time.Time {
	return db.StartOfDay(nowFn(), currentConfig().Location)
}
