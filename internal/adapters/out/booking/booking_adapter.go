package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/matchpoint-club/field-schedule-sync/internal/config"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/out"
)

// BookingAdapter - REST-клиент бэкенда бронирований.
// Авторизация ключом клуба в заголовке c-api-key.
type BookingAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  out.LoggerPort
}

func NewBookingAdapter(cfg *config.Config, logger out.LoggerPort) *BookingAdapter {
	return &BookingAdapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: cfg.Booking.URL,
		apiKey:  cfg.Booking.APIKey,
		logger:  logger,
	}
}

func (a *BookingAdapter) GetField(ctx context.Context, fieldID int64) (*domain.Field, error) {
	url := fmt.Sprintf("%s/fields/%d", a.baseURL, fieldID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("c-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("booking.field.fetch_failed", out.LogFields{
			"fieldId": fieldID,
			"error":   err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("booking.field.fetch_failed", out.LogFields{
			"fieldId": fieldID,
			"status":  resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var field domain.Field
	if err := json.NewDecoder(resp.Body).Decode(&field); err != nil {
		a.logger.Error("booking.field.decode_failed", out.LogFields{
			"fieldId": fieldID,
			"error":   err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("booking.field.fetch_success", out.LogFields{
		"fieldId":      fieldID,
		"slotDuration": field.SlotDurationMinutes,
	})

	return &field, nil
}

func (a *BookingAdapter) ListSlots(ctx context.Context, fieldID int64) ([]domain.PersistedSlot, error) {
	a.logger.Info("booking.slots.fetch", out.LogFields{
		"fieldId": fieldID,
	})

	url := fmt.Sprintf("%s/fields/%d/availability", a.baseURL, fieldID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("c-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("booking.slots.fetch_failed", out.LogFields{
			"fieldId": fieldID,
			"error":   err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("booking.slots.fetch_failed", out.LogFields{
			"fieldId": fieldID,
			"status":  resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var slots []domain.PersistedSlot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		a.logger.Error("booking.slots.decode_failed", out.LogFields{
			"fieldId": fieldID,
			"error":   err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("booking.slots.fetch_success", out.LogFields{
		"fieldId": fieldID,
		"count":   len(slots),
	})

	return slots, nil
}

func (a *BookingAdapter) CreateSlot(ctx context.Context, fieldID int64, slot domain.Slot) (*domain.PersistedSlot, error) {
	body, err := json.Marshal(slot)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/fields/%d/availability", a.baseURL, fieldID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("c-api-key", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var persisted domain.PersistedSlot
	if err := json.NewDecoder(resp.Body).Decode(&persisted); err != nil {
		return nil, err
	}

	return &persisted, nil
}

func (a *BookingAdapter) DeleteSlot(ctx context.Context, fieldID int64, slotID int64) error {
	url := fmt.Sprintf("%s/fields/%d/availability/%d", a.baseURL, fieldID, slotID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("c-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
