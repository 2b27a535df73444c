package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/config"
	"github.com/khoahotran/hireboard/pkg/logger"
)

const (
	TopicCompanyEvents = "company.events"
)

type CompanyEventType string

const (
	CompanyEventLogoUploaded CompanyEventType = "company.logo_uploaded"
)

type CompanyEventPayload struct {
	EventType        CompanyEventType `json:"event_type"`
	CompanyID        uuid.UUID        `json:"company_id"`
	OriginalPublicID string           `json:"original_public_id"`
}

// CompanyEventPublisher is what use cases depend on, so they can run without a broker.
type CompanyEventPublisher interface {
	PublishCompanyEvent(ctx context.Context, payload CompanyEventPayload) error
}

type KafkaProducerClient struct {
	CompanyEventsWriter *kafka.Writer
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'company.events'
	companyWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicCompanyEvents,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}

	log.Info("Initialized Kafka producer", zap.Strings("brokers", brokers), zap.String("topic", TopicCompanyEvents))

	return &KafkaProducerClient{CompanyEventsWriter: companyWriter, logger: log}, nil
}

func (c *KafkaProducerClient) PublishCompanyEvent(ctx context.Context, payload CompanyEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal company event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(payload.CompanyID.String()),
		Value: value,
	}
	if err := c.CompanyEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write company event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.CompanyEventsWriter != nil {
		if err := c.CompanyEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka producers")
}
