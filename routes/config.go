/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"strings"
	"sync"
	"time"

	"github.com/nephroclinic/clinic/clinic"
)

// Config holds runtime settings shared by the handlers.
type Config struct {
	// ClinicWhatsApp receives booking and contact messages.
	ClinicWhatsApp string
	// WhatsAppNotify sends new bookings to ClinicWhatsApp through the
	// linked device in addition to the patient's deep link.
	WhatsAppNotify bool
	// LocationsMapPath is the rendered clinic locations map.
	LocationsMapPath string
	// Location is used for calendar day boundaries.
	Location *time.Location
}

var (
	configMu sync.RWMutex
	config   = defaultConfig()
)

func defaultConfig() Config {
	return Config{
		ClinicWhatsApp:   clinic.WhatsAppPhone,
		LocationsMapPath: clinic.DefaultMapConfig().OutputPath,
		Location:         time.UTC,
	}
}

// Configure replaces the handler settings. Empty fields keep their defaults.
func Configure(cfg Config) {
	defaults := defaultConfig()

	if strings.TrimSpace(cfg.ClinicWhatsApp) == "" {
		cfg.ClinicWhatsApp = defaults.ClinicWhatsApp
	}
	if cfg.LocationsMapPath == "" {
		cfg.LocationsMapPath = defaults.LocationsMapPath
	}
	if cfg.Location == nil {
		cfg.Location = defaults.Location
	}

	configMu.Lock()
	defer configMu.Unlock()

	config = cfg
}

func currentConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()

	return config
}
