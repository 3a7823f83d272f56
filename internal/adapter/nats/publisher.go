package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/config"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
)

const (
	AdCreatedSubject       = "ad.created"
	AdUpdatedSubject       = "ad.updated"
	AdDeletedSubject       = "ad.deleted"
	AdStatusChangedSubject = "ad.status_changed"
)

type Publisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

type adEventPayload struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	CategoryID  string `json:"category_id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	PublishedAt string `json:"published_at,omitempty"`
}

type deletedEventPayload struct {
	ID string `json:"id"`
}

type statusChangedPayload struct {
	ID         string `json:"id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

func NewNATSPublisher(cfg *config.NATSConfig, log *logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: log}, nil
}

func (p *Publisher) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal NATS payload", zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message", zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Debug("Published NATS message", zap.String("subject", subject))
	return nil
}

func adPayload(ad *entity.Ad) adEventPayload {
	payload := adEventPayload{
		ID:         ad.ID,
		UserID:     ad.UserID,
		CategoryID: ad.CategoryID,
		Title:      ad.Title,
		Status:     string(ad.Status),
	}
	if ad.PublishedAt != nil {
		payload.PublishedAt = ad.PublishedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return payload
}

func (p *Publisher) PublishAdCreated(ctx context.Context, ad *entity.Ad) error {
	return p.publish(AdCreatedSubject, adPayload(ad))
}

func (p *Publisher) PublishAdUpdated(ctx context.Context, ad *entity.Ad) error {
	return p.publish(AdUpdatedSubject, adPayload(ad))
}

func (p *Publisher) PublishAdDeleted(ctx context.Context, adID string) error {
	return p.publish(AdDeletedSubject, deletedEventPayload{ID: adID})
}

func (p *Publisher) PublishAdStatusChanged(ctx context.Context, adID string, from, to entity.AdStatus) error {
	return p.publish(AdStatusChangedSubject, statusChangedPayload{
		ID:         adID,
		FromStatus: string(from),
		ToStatus:   string(to),
	})
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
