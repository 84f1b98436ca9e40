/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

// Status represents the WhatsApp connection status
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusPairing      Status = "pairing"
)

// Label returns the Arabic status label shown on the pairing page.
func (s Status) Label() string {
	switch s {
	case StatusConnected:
		return "متصل"
	case StatusConnecting:
		return "جارٍ الاتصال"
	case StatusPairing:
		return "بانتظار المسح"
	default:
		return "غير متصل"
	}
}

// Client manages the clinic's linked WhatsApp device via whatsmeow
type Client struct {
	client      *whatsmeow.Client
	container   *sqlstore.Container
	deviceStore *store.Device
	status      Status
	qrCode      string // Base64 encoded PNG
	mu          sync.RWMutex
}

var (
	instance *Client
	once     sync.Once
)

// GetClient returns the singleton WhatsApp client instance, or nil when
// Initialize has not succeeded.
func GetClient() *Client {
	return instance
}

// Initialize sets up the WhatsApp client with PostgreSQL storage
func Initialize(ctx context.Context, databaseURL string) error {
	var initErr error

	once.Do(func() {
		store.SetOSInfo("Nephro Clinic", [3]uint32{1, 0, 0})

		container, err := sqlstore.New(ctx, "pgx", databaseURL, newWALogger("store"))
		if err != nil {
			initErr = fmt.Errorf("failed to create sqlstore: %w", err)
			return
		}

		deviceStore, err := container.GetFirstDevice(ctx)
		if err != nil {
			initErr = fmt.Errorf("failed to get device: %w", err)
			return
		}

		instance = &Client{
			container:   container,
			deviceStore: deviceStore,
			status:      StatusDisconnected,
		}

		if deviceStore.ID != nil {
			go func() {
				if err := instance.Reconnect(context.Background()); err != nil {
					logger.Error("WhatsApp reconnect failed", "error", err)
				}
			}()
		}
	})

	return initErr
}

// GetStatus returns the current connection status
func (c *Client) GetStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// GetQRCode returns the current QR code as a base64 PNG string
func (c *Client) GetQRCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.qrCode
}

func (c *Client) setStatus(status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *Client) setQRCode(qrCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.qrCode = qrCode
}

func (c *Client) newWhatsmeowClient() *whatsmeow.Client {
	client := whatsmeow.NewClient(c.deviceStore, newWALogger("client"))
	client.AddEventHandler(c.handleEvent)
	client.EnableAutoReconnect = true
	client.AutoTrustIdentity = true

	return client
}

// Connect initiates the WhatsApp connection, starting QR pairing when the
// device has never been linked.
func (c *Client) Connect(ctx context.Context) error {
	c.setStatus(StatusConnecting)

	c.client = c.newWhatsmeowClient()

	if c.client.Store.ID != nil {
		if err := c.client.Connect(); err != nil {
			c.setStatus(StatusDisconnected)
			return fmt.Errorf("failed to connect: %w", err)
		}

		c.setStatus(StatusConnected)

		return nil
	}

	// The QR channel must exist before connecting.
	c.setStatus(StatusPairing)

	qrChan, err := c.client.GetQRChannel(ctx)
	if err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to get QR channel: %w", err)
	}

	if err := c.client.Connect(); err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to connect: %w", err)
	}

	go c.watchPairing(qrChan)

	return nil
}

func (c *Client) watchPairing(qrChan <-chan whatsmeow.QRChannelItem) {
	for evt := range qrChan {
		logger.Debug("WhatsApp QR event", "event", evt.Event)

		switch evt.Event {
		case "code":
			png, err := qrcode.Encode(evt.Code, qrcode.Medium, 256)
			if err != nil {
				logger.Error("Failed to generate QR code", "error", err)
				continue
			}

			c.setQRCode(base64.StdEncoding.EncodeToString(png))
			logger.Info("WhatsApp QR code generated")
		case "success":
			c.setQRCode("")
			c.setStatus(StatusConnected)
			logger.Info("WhatsApp pairing successful")
		case "timeout":
			c.setQRCode("")
			c.setStatus(StatusDisconnected)
			logger.Warn("WhatsApp QR code timeout")
		case "error":
			c.setQRCode("")
			c.setStatus(StatusDisconnected)
			logger.Error("WhatsApp pairing error", "error", evt.Error)
		}
	}
}

// Reconnect attempts to reconnect with existing credentials
func (c *Client) Reconnect(_ context.Context) error {
	if c.deviceStore == nil || c.deviceStore.ID == nil {
		return errNoExistingSessionToReconnect
	}

	c.setStatus(StatusConnecting)

	c.client = c.newWhatsmeowClient()

	if err := c.client.Connect(); err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to reconnect: %w", err)
	}

	c.setStatus(StatusConnected)
	logger.Info("WhatsApp reconnected")

	return nil
}

// Disconnect cleanly disconnects the WhatsApp client
func (c *Client) Disconnect() {
	if c.client != nil {
		c.client.Disconnect()
	}

	c.setStatus(StatusDisconnected)
	c.setQRCode("")
}

// Logout unlinks the device and prepares a fresh device store for pairing.
func (c *Client) Logout(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	if err := c.client.Logout(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	c.setStatus(StatusDisconnected)
	c.setQRCode("")

	if c.container == nil {
		return errNoDeviceStoreContainer
	}

	deviceStore, err := c.container.GetFirstDevice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get new device: %w", err)
	}

	c.deviceStore = deviceStore

	return nil
}

// IsConnected returns true if WhatsApp is connected
func (c *Client) IsConnected() bool {
	return c.GetStatus() == StatusConnected
}

// LinkedPhone returns the phone number of the linked device, or "" when
// no device is paired.
func (c *Client) LinkedPhone() string {
	if c.deviceStore == nil || c.deviceStore.ID == nil {
		return ""
	}

	return JIDToPhone(c.deviceStore.ID.ToNonAD().String())
}

// SendText sends a plain text message to phone, which may be written in
// local or international form.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	jid, err := phoneJID(phone)
	if err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	if !c.IsConnected() || c.client == nil {
		return ErrNotConnected
	}

	if _, err := c.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(text),
	}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	logger.Info("WhatsApp message sent", "to", jid.User)

	return nil
}

func phoneJID(phone string) (types.JID, error) {
	digits := ToInternational(phone, DefaultCountryCode)
	if digits == "" {
		return types.EmptyJID, ErrInvalidPhone
	}

	return types.NewJID(digits, types.DefaultUserServer), nil
}

func (c *Client) handleEvent(evt interface{}) {
	switch evt.(type) {
	case *events.Connected:
		c.setStatus(StatusConnected)
		logger.Info("WhatsApp connected")
	case *events.Disconnected:
		c.setStatus(StatusDisconnected)
		logger.Info("WhatsApp disconnected")
	case *events.LoggedOut:
		c.setStatus(StatusDisconnected)
		c.setQRCode("")
		logger.Warn("WhatsApp logged out")
	}
}
