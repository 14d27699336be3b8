// Package messaging delivers outbound WhatsApp text messages to farmers and
// staff.
package messaging

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/config"
	client "github.com/mamadbah2/livestockcare/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// ErrInvalidPhone is returned for numbers that cannot be dialled.
var ErrInvalidPhone = errors.New("invalid phone number")

// WhatsAppSender sends plain text messages through the WhatsApp Cloud API.
type WhatsAppSender struct {
	client      client.Client
	countryCode string
	logger      *zap.Logger
}

// NewWhatsAppSender wires a sender over the API client.
func NewWhatsAppSender(cfg config.WhatsAppConfig, c client.Client, logger *zap.Logger) *WhatsAppSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppSender{client: c, countryCode: cfg.CountryCode, logger: logger}
}

// Send delivers body to phone.
func (s *WhatsAppSender) Send(ctx context.Context, phone, body string) error {
	to, err := NormalizePhone(phone, s.countryCode)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctx, client.SendTextMessageRequest{To: to, Body: body})
	if err != nil {
		return err
	}

	id := ""
	if len(resp.Messages) > 0 {
		id = resp.Messages[0].ID
	}
	s.logger.Debug("whatsapp message sent", zap.String("to", to), zap.String("message_id", id))
	return nil
}

// NormalizePhone strips formatting from a phone number and prefixes the
// country code to local ten-digit numbers.
func NormalizePhone(phone, countryCode string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")

	switch {
	case len(digits) == 10 && countryCode != "":
		return countryCode + digits, nil
	case len(digits) >= 11 && len(digits) <= 15:
		return digits, nil
	default:
		return "", ErrInvalidPhone
	}
}
