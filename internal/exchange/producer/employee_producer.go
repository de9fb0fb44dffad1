package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyanvix/employee-admin/internal/dto"
)

// EmployeeProducer publishes employee-change audit events to a single
// Kafka topic.
type EmployeeProducer struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	log    zerolog.Logger
}

type Config struct {
	Topic  string
	Source string
}

func NewEmployeeProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *EmployeeProducer {
	return &EmployeeProducer{
		sp:     sp,
		topic:  cfg.Topic,
		source: cfg.Source,
		log:    log.With().Str("component", "EmployeeProducer").Logger(),
	}
}

func (p *EmployeeProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

func (p *EmployeeProducer) ProduceChange(ctx context.Context, messageID uuid.UUID, action string, e dto.Employee) error {
	env := Envelope{
		Action:     action,
		MessageID:  messageID,
		EmployeeID: e.EmployeeID,
		Payload:    changePayloadFrom(e),
		Timestamp:  time.Now().UTC(),
		Source:     p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal change envelope: %w", err)
	}

	return p.send(ctx, p.topic, e.EmployeeID, body, map[string]string{
		"event-kind":   action,
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *EmployeeProducer) send(_ context.Context, topic, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", topic).
		Str("key", key).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}

func changePayloadFrom(e dto.Employee) ChangePayload {
	return ChangePayload{
		ID:          e.ID,
		Name:        e.Name,
		EmployeeID:  e.EmployeeID,
		Email:       e.Email,
		Phone:       e.Phone,
		Department:  e.Department,
		Designation: e.Designation,
		JoiningDate: e.JoiningDate.Format("2006-01-02"),
		Salary:      e.Salary,
		Status:      e.Status,
		IsDeleted:   e.IsDeleted,
	}
}
