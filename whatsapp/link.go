/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import (
	"net/url"
	"strings"
)

const (
	deepLinkBase = "https://wa.me/"
	notSpecified = "غير محدد"
)

// DeepLink returns a wa.me link that opens a chat with phone, prefilled
// with message when it is not blank.
func DeepLink(phone, message string) string {
	link := deepLinkBase + ToInternational(phone, DefaultCountryCode)

	if strings.TrimSpace(message) == "" {
		return link
	}

	// wa.me expects %20 rather than + for spaces.
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// BookingDetails is the content of a booking request message.
type BookingDetails struct {
	Name       string
	Phone      string
	Address    string
	ClinicName string
	Date       string
	Time       string
	VisitLabel string
	FollowUp   bool
}

// ContactDetails is the content of a contact form message.
type ContactDetails struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSpecified
	}

	return value
}

// BookingMessage composes the booking request sent to the clinic.
func BookingMessage(b BookingDetails) string {
	var sb strings.Builder

	if b.FollowUp {
		sb.WriteString("🔄 طلب حجز إعادة كشف 🔄\n\n")
	} else {
		sb.WriteString("✨ طلب حجز كشف جديد ✨\n\n")
	}

	sb.WriteString("👤 الاسم: " + b.Name + "\n")
	sb.WriteString("📱 الهاتف: " + b.Phone + "\n")
	sb.WriteString("🏠 العنوان: " + orNotSpecified(b.Address) + "\n")
	sb.WriteString("🏥 العيادة: " + b.ClinicName + "\n")
	sb.WriteString("📅 التاريخ: " + b.Date + "\n")
	sb.WriteString("🕐 الوقت: " + b.Time + "\n")
	sb.WriteString("🩺 نوع الزيارة: " + b.VisitLabel + "\n\n")

	if b.FollowUp {
		sb.WriteString("سعداء بمتابعتكم معنا 💜\n")
		sb.WriteString("نتمنى لكم دوام الصحة والعافية")
	} else {
		sb.WriteString("مرحباً بكم في عيادة د. نهى جمال 💜\n")
		sb.WriteString("نتطلع لتقديم أفضل رعاية صحية لكم")
	}

	return sb.String()
}

// ContactMessage composes a contact form message.
func ContactMessage(c ContactDetails) string {
	var sb strings.Builder

	sb.WriteString("📩 رسالة جديدة من الموقع\n\n")
	sb.WriteString("👤 الاسم: " + c.Name + "\n")
	sb.WriteString("📧 البريد: " + orNotSpecified(c.Email) + "\n")
	sb.WriteString("📱 الهاتف: " + orNotSpecified(c.Phone) + "\n\n")
	sb.WriteString("💬 الرسالة:\n")
	sb.WriteString(c.Message)

	return sb.String()
}
