package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/property-service/internal/integrations/webhook"
	"github.com/Dan9191/property-service/internal/models"
)

// ErrInvalidAddress is returned when an address fails validation
var ErrInvalidAddress = errors.New("invalid address")

// ValidateAddress checks an address capture without sending it
func (s *Service) ValidateAddress(addr models.Address) models.AddressCheck {
	return webhook.Validate(addr)
}

// SubmitAddress validates, normalizes and delivers an address to the intake webhook
func (s *Service) SubmitAddress(ctx context.Context, addr models.Address) (*webhook.Result, error) {
	if s.ext.Webhook == nil {
		return nil, fmt.Errorf("webhook: %w", ErrNotConfigured)
	}

	check := webhook.Validate(addr)
	if !check.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, strings.Join(check.Errors, "; "))
	}
	for _, w := range check.Warnings {
		s.log.Warnf("Address warning: %s", w)
	}

	formatted := webhook.Format(addr)
	result, err := s.ext.Webhook.Send(ctx, formatted)
	if err != nil {
		s.log.Errorf("Failed to submit address %s: %v", formatted.FormattedAddress, err)
		return result, err
	}

	s.log.Infof("Address submitted: %s", formatted.FormattedAddress)
	return result, nil
}

// PingWebhook tests connectivity to the intake webhook
func (s *Service) PingWebhook(ctx context.Context) (*webhook.PingResult, error) {
	if s.ext.Webhook == nil {
		return nil, fmt.Errorf("webhook: %w", ErrNotConfigured)
	}
	return s.ext.Webhook.Ping(ctx), nil
}
