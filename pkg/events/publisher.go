// Package events publishes run-lifecycle events to Kafka so downstream
// systems can track pipeline progress without scraping log files.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/hamba/avro/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"

	"github.com/image2radiomics/i2r/pkg/config"
)

const batchTimeoutMillis = 100

var jsonFast = jsoniter.ConfigFastest

// Event is one run-lifecycle notification.
type Event struct {
	Pipeline    string  `json:"pipeline" avro:"pipeline"`
	Module      string  `json:"module" avro:"module"`
	Status      string  `json:"status" avro:"status"`
	Folder      string  `json:"folder" avro:"folder"`
	ElapsedSecs float64 `json:"elapsed_secs" avro:"elapsed_secs"`
	At          int64   `json:"at" avro:"at"` // unix millis
}

// Event statuses.
const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// eventSchema is fixed and project-owned; there is no schema registry in the
// deployments this tool targets.
const eventSchema = `{
  "type": "record",
  "name": "PipelineEvent",
  "fields": [
    {"name": "pipeline", "type": "string"},
    {"name": "module", "type": "string"},
    {"name": "status", "type": "string"},
    {"name": "folder", "type": "string"},
    {"name": "elapsed_secs", "type": "double"},
    {"name": "at", "type": "long"}
  ]
}`

// Publisher wraps a kafka.Writer with JSON or Avro encoding.
type Publisher struct {
	writer *kafka.Writer
	topic  string
	avro   avro.Schema // nil for JSON
}

// NewPublisher creates a publisher, or (nil, nil) when events are disabled.
func NewPublisher(cfg config.EventsConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, fmt.Errorf("events enabled but brokers or topic missing")
	}

	p := &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: batchTimeoutMillis * time.Millisecond,
			RequiredAcks: kafka.RequireAll,
		},
		topic: cfg.Topic,
	}

	switch cfg.Format {
	case "", "json":
	case "avro":
		schema, err := avro.Parse(eventSchema)
		if err != nil {
			return nil, fmt.Errorf("parsing event schema: %w", err)
		}
		p.avro = schema
	default:
		return nil, fmt.Errorf("unknown event format %q", cfg.Format)
	}
	return p, nil
}

// Publish encodes and sends one event, keyed by pipeline name.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	if ev.At == 0 {
		ev.At = time.Now().UnixMilli()
	}

	payload, err := p.encode(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Pipeline),
		Value: payload,
	})
}

func (p *Publisher) encode(ev Event) ([]byte, error) {
	if p.avro != nil {
		return avro.Marshal(p.avro, &ev)
	}
	return jsonFast.Marshal(&ev)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
