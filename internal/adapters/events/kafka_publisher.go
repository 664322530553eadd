package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portsevents "github.com/SscSPs/fx_rates_service/internal/core/ports/events"
	"github.com/segmentio/kafka-go"
)

// RefreshCompletedEventType names the event written after every refresh pass.
const RefreshCompletedEventType = "rates.refreshed"

const publishTimeout = 10 * time.Second

// RefreshCompletedEvent is the JSON payload of a rates.refreshed message.
type RefreshCompletedEvent struct {
	Type                string    `json:"type"`
	CurrenciesInSystem  int       `json:"currenciesInSystem"`
	CurrenciesProcessed int       `json:"currenciesProcessed"`
	ProvidersWithData   int       `json:"providersWithData"`
	RatesSaved          int       `json:"ratesSaved"`
	Failures            []string  `json:"failures"`
	StartedAt           time.Time `json:"startedAt"`
	DurationMillis      int64     `json:"durationMillis"`
}

// NewRefreshCompletedEvent builds the payload for summary.
func NewRefreshCompletedEvent(summary domain.RefreshSummary) RefreshCompletedEvent {
	failures := summary.Failures
	if failures == nil {
		failures = []string{}
	}
	return RefreshCompletedEvent{
		Type:                RefreshCompletedEventType,
		CurrenciesInSystem:  summary.CurrenciesInSystem,
		CurrenciesProcessed: summary.CurrenciesProcessed,
		ProvidersWithData:   summary.ProvidersWithData,
		RatesSaved:          summary.RatesSaved,
		Failures:            failures,
		StartedAt:           summary.StartedAt,
		DurationMillis:      summary.Duration.Milliseconds(),
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRefreshPublisher writes refresh summaries to a Kafka topic.
type KafkaRefreshPublisher struct {
	writer messageWriter
}

var _ portsevents.RefreshEventPublisher = (*KafkaRefreshPublisher)(nil)

func NewKafkaRefreshPublisher(brokers []string, topic string) *KafkaRefreshPublisher {
	return &KafkaRefreshPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *KafkaRefreshPublisher) PublishRefreshCompleted(ctx context.Context, summary domain.RefreshSummary) error {
	msg, err := json.Marshal(NewRefreshCompletedEvent(summary))
	if err != nil {
		return fmt.Errorf("failed to encode refresh event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(RefreshCompletedEventType),
		Value: msg,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish refresh event: %w", err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (k *KafkaRefreshPublisher) Close() error {
	return k.writer.Close()
}
