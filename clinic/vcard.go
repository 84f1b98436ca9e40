/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package clinic

import (
	"fmt"
	"io"

	"github.com/emersion/go-vcard"
)

// VCard builds the clinic's contact card with one address per branch.
func VCard() vcard.Card {
	card := make(vcard.Card)

	card.SetValue(vcard.FieldFormattedName, DoctorName)
	card.AddName(&vcard.Name{
		GivenName:       "نهى جمال",
		FamilyName:      "عبدالمالك",
		HonorificPrefix: "د.",
	})
	card.SetValue(vcard.FieldTitle, DoctorTitle)

	card.Add(vcard.FieldTelephone, &vcard.Field{
		Value:  "+" + WhatsAppPhone,
		Params: vcard.Params{vcard.ParamType: []string{"cell"}},
	})

	for _, l := range locations {
		card.AddAddress(&vcard.Address{
			Field:         &vcard.Field{Params: vcard.Params{vcard.ParamType: []string{"work"}}},
			StreetAddress: l.Address,
			Locality:      l.City,
			Country:       "مصر",
		})
	}

	vcard.ToV4(card)

	return card
}

// WriteVCard encodes the clinic's contact card to w.
func WriteVCard(w io.Writer) error {
	if err := vcard.NewEncoder(w).Encode(VCard()); err != nil {
		return fmt.Errorf("failed to encode vcard: %w", err)
	}

	return nil
}
