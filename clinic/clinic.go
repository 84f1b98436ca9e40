/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package clinic

import (
	"net/url"
	"strings"
)

const (
	// DoctorName is the clinic physician's display name.
	DoctorName = "د. نهى جمال عبدالمالك"
	// DoctorTitle is the physician's specialty.
	DoctorTitle = "استشاري أمراض وزراعة الكلى"
	// Phone is the clinic phone in local form.
	Phone = "01029665927"
	// WhatsAppPhone is the clinic phone in international form.
	WhatsAppPhone = "201029665927"
)

// Location is one of the clinic branches.
type Location struct {
	ID      string
	Name    string
	City    string
	Address string
	Lat     float64
	Lng     float64
}

// MapURL returns a Google Maps search link for the branch.
func (l Location) MapURL() string {
	query := strings.Join([]string{l.Address, l.City, "مصر"}, " ")
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

var locations = []Location{
	{
		ID:      "assiut",
		Name:    "عيادة أسيوط",
		City:    "أسيوط",
		Address: "عمارات الأوقاف - عمارة 4 - الدور الثالث",
		Lat:     27.18,
		Lng:     31.18,
	},
	{
		ID:      "mallawi",
		Name:    "عيادة ملوي",
		City:    "ملوي",
		Address: "14 شارع العرفاني - أمام الثانوية بنات",
		Lat:     27.73,
		Lng:     30.84,
	},
}

// Locations returns the clinic branches in display order.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations)

	return out
}

// LocationByID looks up a branch by its form identifier.
func LocationByID(id string) (Location, bool) {
	for _, l := range locations {
		if l.ID == id {
			return l, true
		}
	}

	return Location{}, false
}

var timeSlots = []string{
	"10:00 صباحاً",
	"11:00 صباحاً",
	"12:00 ظهراً",
	"01:00 مساءً",
	"02:00 مساءً",
	"03:00 مساءً",
	"04:00 مساءً",
	"05:00 مساءً",
	"06:00 مساءً",
	"07:00 مساءً",
	"08:00 مساءً",
}

// TimeSlots returns the bookable appointment times.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)

	return out
}

// IsTimeSlot reports whether slot is one of the bookable times.
func IsTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}

	return false
}

// Service is an offered medical service shown on the landing page.
type Service struct {
	Title       string
	Description string
}

// Services lists the clinic's services.
func Services() []Service {
	return []Service{
		{Title: "تشخيص وعلاج القصور الكلوي", Description: "تشخيص وعلاج القصور الكلوي الحاد والمزمن بأحدث الطرق العلاجية"},
		{Title: "متابعة زراعة الكلى", Description: "متابعة دقيقة ومستمرة لحالات زراعة الكلى وما بعد العملية"},
		{Title: "الغسيل الكلوي", Description: "متابعة شاملة لمرضى الغسيل الكلوي الدموي والبريتوني"},
		{Title: "الالتهاب النفروزي", Description: "تشخيص وعلاج حالات الالتهاب النفروزي والمتلازمة الكلوية"},
		{Title: "عينات البذل الكلوي", Description: "أخذ عينات البذل الكلوي للتشخيص الدقيق للحالات المختلفة"},
		{Title: "أمراض الضغط والسكر", Description: "متابعة مرضى الضغط والسكر وتأثيرها على الكلى والجهاز الهضمي"},
		{Title: "أمراض المناعة المتعلقة بالكلى", Description: "تشخيص وعلاج الذئبة الحمراء والروماتويد المفصلي وتأثيرهما على الكلى"},
	}
}

// Credential is a line of the physician's biography.
type Credential struct {
	Title    string
	Subtitle string
}

// Credentials lists the physician's positions and memberships.
func Credentials() []Credential {
	return []Credential{
		{Title: "مدرس أمراض وزراعة الكلى", Subtitle: "كلية الطب - جامعة أسيوط"},
		{Title: "استشاري أمراض الكلى", Subtitle: "مستشفيات جامعة أسيوط"},
		{Title: "عضو الجمعية العالمية", Subtitle: "لأمراض وزراعة الكلى"},
		{Title: "عضو الجمعية المصرية", Subtitle: "لأمراض وزراعة الكلى"},
	}
}
