/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package giftcard

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinDiscount = 1
	MaxDiscount = 100

	dateLayout    = "2006-01-02"
	displayLayout = "Jan 2, 2006"
)

var englishNamePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)

// Card is a discount gift card issued to a patient.
type Card struct {
	Code        string
	PatientName string
	Discount    int
	ExpiresOn   time.Time // calendar date, valid through the end of the day
}

// New parses and validates gift card form values. The expiry date may be
// today but not earlier, judged in the location of now.
func New(name, discount, expiry string, now time.Time) (*Card, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return nil, ErrNameRequired
	}
	if !englishNamePattern.MatchString(name) {
		return nil, ErrNameNotEnglish
	}

	pct, err := strconv.Atoi(strings.TrimSpace(discount))
	if err != nil {
		return nil, ErrInvalidDiscount
	}
	if pct < MinDiscount || pct > MaxDiscount {
		return nil, ErrDiscountOutOfRange
	}

	expiry = strings.TrimSpace(expiry)
	if expiry == "" {
		return nil, ErrExpiryRequired
	}

	expiresOn, err := time.ParseInLocation(dateLayout, expiry, now.Location())
	if err != nil {
		return nil, ErrInvalidExpiry
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if expiresOn.Before(today) {
		return nil, ErrExpiryInPast
	}

	return &Card{
		Code:        newCode(),
		PatientName: name,
		Discount:    pct,
		ExpiresOn:   expiresOn,
	}, nil
}

func newCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:8])
}

// ExpiryLabel formats the expiry date as printed on the card.
func (c *Card) ExpiryLabel() string {
	return c.ExpiresOn.Format(displayLayout)
}

// FileName is the download name for the rendered card.
func (c *Card) FileName() string {
	return "gift-card-" + strings.ReplaceAll(c.PatientName, " ", "-") + ".png"
}

// BookingURL links to the booking section with the card code attached.
func (c *Card) BookingURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/?gift=" + c.Code + "#booking"
}
