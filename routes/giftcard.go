/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/giftcard"
	"github.com/nephroclinic/clinic/utils"
)

func giftCardErrorMessage(err error) string {
	switch {
	case errors.Is(err, giftcard.ErrNameRequired):
		return "برجاء إدخال اسم المريض"
	case errors.Is(err, giftcard.ErrNameNotEnglish):
		return "برجاء كتابة الاسم بالحروف الإنجليزية فقط"
	case errors.Is(err, giftcard.ErrInvalidDiscount), errors.Is(err, giftcard.ErrDiscountOutOfRange):
		return "نسبة الخصم يجب أن تكون بين 1 و 100"
	case errors.Is(err, giftcard.ErrExpiryRequired), errors.Is(err, giftcard.ErrInvalidExpiry):
		return "برجاء إدخال تاريخ انتهاء صحيح"
	case errors.Is(err, giftcard.ErrExpiryInPast):
		return "تاريخ الانتهاء يجب ألا يكون في الماضي"
	default:
		return "تعذر إنشاء بطاقة الهدية"
	}
}

// publicBaseURL prefers the configured site URL and falls back to the
// request host.
func publicBaseURL(c flamego.Context) string {
	if base := utils.BaseURL(); base != "" {
		return base
	}

	scheme := "http"
	if c.Request().TLS != nil || c.Request().Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	return scheme + "://" + c.Request().Host
}

// GiftCardForm renders the gift card generator.
func GiftCardForm(t template.Template, data template.Data) {
	setPageTitle(data, "بطاقة هدية")
	data["IsGiftCard"] = true
	data["MinExpiry"] = today().Format(dateLayout)

	t.HTML(http.StatusOK, "gift_card")
}

// GenerateGiftCard validates the form and downloads the card as PNG.
func GenerateGiftCard(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "تعذر قراءة البيانات")
		c.Redirect("/gift-card", http.StatusSeeOther)
		return
	}

	form := c.Request().Form

	card, err := giftcard.New(
		form.Get("name"),
		form.Get("discount"),
		form.Get("expiry"),
		nowFn().In(currentConfig().Location),
	)
	if err != nil {
		SetErrorFlash(s, giftCardErrorMessage(err))
		c.Redirect("/gift-card", http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	if err := card.RenderPNG(&buf, publicBaseURL(c)); err != nil {
		logger.Error("Error rendering gift card", "error", err)
		SetErrorFlash(s, giftCardErrorMessage(err))
		c.Redirect("/gift-card", http.StatusSeeOther)
		return
	}

	logger.Info("Gift card generated", "code", card.Code, "discount", card.Discount)

	header := c.ResponseWriter().Header()
	header.Set("Content-Type", "image/png")
	header.Set("Content-Disposition", `attachment; filename="`+card.FileName()+`"`)
	header.Set("Content-Length", strconv.Itoa(buf.Len()))

	c.ResponseWriter().WriteHeader(http.StatusOK)
	_, _ = c.ResponseWriter().Write(buf.Bytes())
}
