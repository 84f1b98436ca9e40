/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/db"
)

var createReviewFn = db.CreateReview

// ReviewForm renders the public review form.
func ReviewForm(t template.Template, data template.Data) {
	setPageTitle(data, "أضف تقييمك")
	setClinicData(data)
	data["MaxRating"] = db.MaxRating

	t.HTML(http.StatusOK, "review_new")
}

// SubmitReview stores a pending review for moderation.
func SubmitReview(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing review form", "error", err)
		SetErrorFlash(s, "برجاء إدخال الاسم والتقييم")
		c.Redirect("/reviews/new", http.StatusSeeOther)
		return
	}

	form := c.Request().Form

	rating, err := strconv.Atoi(strings.TrimSpace(form.Get("rating")))
	if err != nil {
		rating = 0
	}

	_, err = createReviewFn(c.Request().Context(), db.CreateReviewInput{
		PatientName: form.Get("name"),
		Rating:      rating,
		Comment:     form.Get("comment"),
	})

	switch {
	case errors.Is(err, db.ErrReviewNameRequired), errors.Is(err, db.ErrReviewRatingOutOfRange):
		SetErrorFlash(s, "برجاء إدخال الاسم والتقييم")
		c.Redirect("/reviews/new", http.StatusSeeOther)
		return
	case err != nil:
		logger.Error("Error creating review", "error", err)
		SetErrorFlash(s, "تعذر إرسال التقييم، برجاء المحاولة مرة أخرى")
		c.Redirect("/reviews/new", http.StatusSeeOther)
		return
	}

	SetSuccessFlash(s, "شكراً لك! سيظهر تقييمك بعد المراجعة")
	c.Redirect("/#reviews", http.StatusSeeOther)
}
