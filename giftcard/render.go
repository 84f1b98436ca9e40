/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package giftcard

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Card images are 16:9.
const (
	Width  = 1440
	Height = 810

	padding = 48.0
	qrSize  = 168
)

// Text printed on every card.
const (
	doctorLine    = "Dr. Noha Gamal"
	specialtyLine = "Kidney Disease Consultant"
	clinicPhone   = "01029665927"
)

var (
	purpleDark  = color.RGBA{0x6b, 0x21, 0xa8, 0xff}
	purple      = color.RGBA{0x7c, 0x3a, 0xed, 0xff}
	purpleLight = color.RGBA{0xa8, 0x55, 0xf7, 0xff}
	white       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	whiteMuted  = color.RGBA{0xff, 0xff, 0xff, 0xb3}
	whiteFaint  = color.RGBA{0xff, 0xff, 0xff, 0x33}
)

var (
	fontsOnce   sync.Once
	fontsErr    error
	boldFont    *truetype.Font
	regularFont *truetype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		boldFont, fontsErr = truetype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse bold font: %w", fontsErr)
			return
		}

		regularFont, fontsErr = truetype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse regular font: %w", fontsErr)
		}
	})

	return fontsErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// RenderPNG draws the card and writes it to w as a PNG. The QR code in the
// corner opens the booking section of baseURL with the card code.
func (c *Card) RenderPNG(w io.Writer, baseURL string) error {
	if err := loadFonts(); err != nil {
		return err
	}

	qr, err := qrcode.New(c.BookingURL(baseURL), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	dc := gg.NewContext(Width, Height)

	background := gg.NewLinearGradient(0, 0, Width, Height)
	background.AddColorStop(0, purpleDark)
	background.AddColorStop(0.5, purple)
	background.AddColorStop(1, purpleLight)

	dc.DrawRoundedRectangle(0, 0, Width, Height, 32)
	dc.SetFillStyle(background)
	dc.Fill()

	// Soft highlights in opposite corners.
	dc.SetColor(whiteFaint)
	dc.DrawCircle(Width*0.2, Height*0.8, 220)
	dc.Fill()
	dc.DrawCircle(Width*0.8, Height*0.2, 180)
	dc.Fill()

	// Header
	dc.SetColor(white)
	dc.SetFontFace(face(boldFont, 40))
	dc.DrawString(doctorLine, padding, padding+40)

	dc.SetColor(whiteMuted)
	dc.SetFontFace(face(regularFont, 26))
	dc.DrawString(specialtyLine, padding, padding+80)

	const badgeWidth, badgeHeight = 240.0, 64.0

	dc.SetColor(white)
	dc.DrawRoundedRectangle(Width-padding-badgeWidth, padding, badgeWidth, badgeHeight, 16)
	dc.Fill()
	dc.SetColor(purple)
	dc.SetFontFace(face(boldFont, 28))
	dc.DrawStringAnchored("GIFT CARD", Width-padding-badgeWidth/2, padding+badgeHeight/2, 0.5, 0.35)

	// Center
	dc.SetColor(whiteMuted)
	dc.SetFontFace(face(regularFont, 24))
	dc.DrawStringAnchored("SPECIAL DISCOUNT FOR", Width/2, Height*0.36, 0.5, 0.5)

	dc.SetColor(white)
	dc.SetFontFace(face(boldFont, 60))
	dc.DrawStringAnchored(c.PatientName, Width/2, Height*0.47, 0.5, 0.5)

	const pillWidth, pillHeight = 360.0, 110.0

	dc.SetColor(whiteFaint)
	dc.DrawRoundedRectangle(Width/2-pillWidth/2, Height*0.56, pillWidth, pillHeight, 16)
	dc.Fill()

	dc.SetColor(white)
	dc.SetFontFace(face(boldFont, 64))
	dc.DrawStringAnchored(fmt.Sprintf("%d%% OFF", c.Discount), Width/2, Height*0.56+pillHeight/2, 0.5, 0.35)

	// Footer
	dc.SetColor(whiteMuted)
	dc.SetFontFace(face(regularFont, 20))
	dc.DrawString("VALID UNTIL", padding, Height-padding-44)

	dc.SetColor(white)
	dc.SetFontFace(face(boldFont, 30))
	dc.DrawString(c.ExpiryLabel(), padding, Height-padding)

	dc.SetColor(whiteMuted)
	dc.SetFontFace(face(regularFont, 20))
	dc.DrawStringAnchored("CODE "+c.Code, Width/2, Height-padding-44, 0.5, 0)

	dc.SetColor(white)
	dc.SetFontFace(face(boldFont, 30))
	dc.DrawStringAnchored(clinicPhone, Width/2, Height-padding, 0.5, 0)

	qrX := Width - padding - qrSize
	qrY := Height - padding - qrSize

	dc.SetColor(white)
	dc.DrawRoundedRectangle(float64(qrX)-8, float64(qrY)-8, qrSize+16, qrSize+16, 12)
	dc.Fill()
	dc.DrawImage(qr.Image(qrSize), int(qrX), int(qrY))

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode gift card: %w", err)
	}

	return nil
}
