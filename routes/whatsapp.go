/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/whatsapp"
)

const whatsAppPath = "/dashboard/whatsapp"

var getWhatsAppClientFn = whatsapp.GetClient

// WhatsAppPairing renders the WhatsApp pairing/status page
func WhatsAppPairing(t template.Template, data template.Data) {
	setPageTitle(data, "واتساب")
	data["IsWhatsApp"] = true
	data["NotifyEnabled"] = currentConfig().WhatsAppNotify

	client := getWhatsAppClientFn()

	if client != nil {
		status := client.GetStatus()
		data["Available"] = true
		data["Status"] = string(status)
		data["StatusLabel"] = status.Label()
		data["QRCode"] = client.GetQRCode()
		data["IsConnected"] = client.IsConnected()
		data["LinkedPhone"] = client.LinkedPhone()
	} else {
		data["Status"] = "unavailable"
		data["StatusLabel"] = "غير متاح"
		data["QRCode"] = ""
		data["IsConnected"] = false
	}

	t.HTML(http.StatusOK, "whatsapp_pairing")
}

// WhatsAppConnect initiates the WhatsApp connection
func WhatsAppConnect(c flamego.Context, s session.Session) {
	client := getWhatsAppClientFn()

	if client == nil {
		SetErrorFlash(s, "واتساب غير متاح")
		c.Redirect(whatsAppPath, http.StatusSeeOther)

		return
	}

	// Use background context since the connection needs to persist beyond the HTTP request
	go func() {
		if err := client.Connect(context.Background()); err != nil {
			logger.Error("WhatsApp connect failed", "error", err)
		}
	}()

	c.Redirect(whatsAppPath, http.StatusSeeOther)
}

// WhatsAppDisconnect unlinks the clinic device
func WhatsAppDisconnect(c flamego.Context, s session.Session) {
	client := getWhatsAppClientFn()

	if client == nil {
		SetErrorFlash(s, "واتساب غير متاح")
		c.Redirect(whatsAppPath, http.StatusSeeOther)

		return
	}

	if err := client.Logout(c.Request().Context()); err != nil {
		logger.Error("WhatsApp logout failed", "error", err)
		SetErrorFlash(s, "تعذر فصل واتساب")
	} else {
		SetSuccessFlash(s, "تم فصل واتساب")
	}

	c.Redirect(whatsAppPath, http.StatusSeeOther)
}

// WhatsAppStatusAPI returns the current WhatsApp status as JSON
func WhatsAppStatusAPI(c flamego.Context) {
	client := getWhatsAppClientFn()

	response := map[string]interface{}{
		"status":    "unavailable",
		"qrCode":    "",
		"connected": false,
	}

	if client != nil {
		response["status"] = string(client.GetStatus())
		response["qrCode"] = client.GetQRCode()
		response["connected"] = client.IsConnected()
	}

	writeJSON(c.ResponseWriter(), http.StatusOK, response)
}
