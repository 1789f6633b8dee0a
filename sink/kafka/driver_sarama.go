package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/vmihailenco/msgpack/v5"

	"augkit/internal/logging"
	"augkit/sink"
)

type Config struct {
	Brokers  []string      `mapstructure:"brokers"`
	Topic    string        `mapstructure:"topic"`
	Acks     int16         `mapstructure:"required_acks"` // 0,1,-1
	Encoding string        `mapstructure:"encoding"`      // json|msgpack
	ClientID string        `mapstructure:"client_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type producerFn func(brokers []string, cfg *sarama.Config) (sarama.SyncProducer, error)

type driver struct {
	cfg         Config
	p           sarama.SyncProducer
	newProducer producerFn
}

func (d *driver) Configure(raw map[string]any) error {
	cfg := Config{Acks: int16(sarama.WaitForAll), Encoding: "json", ClientID: "augprof", Timeout: 10 * time.Second}
	if err := sink.Decode(raw, &cfg); err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return errors.New("kafka-sink: brokers and topic are required")
	}
	if cfg.Encoding != "json" && cfg.Encoding != "msgpack" {
		return fmt.Errorf("kafka-sink: unknown encoding %q", cfg.Encoding)
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	sc.Producer.Timeout = cfg.Timeout
	newProducer := d.newProducer
	if newProducer == nil {
		newProducer = sarama.NewSyncProducer
	}
	var err error
	d.p, err = newProducer(cfg.Brokers, sc)
	if err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	return nil
}

func (d *driver) Publish(ctx context.Context, r sink.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encode(d.cfg.Encoding, r)
	if err != nil {
		return fmt.Errorf("kafka-sink: encode: %w", err)
	}
	part, off, err := d.p.SendMessage(&sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(r.Session),
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{Key: []byte("content-type"), Value: []byte(contentType(d.cfg.Encoding))},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka-sink: send: %w", err)
	}
	logging.L().Debug("kafka-sink: report published", "topic", d.cfg.Topic, "partition", part, "offset", off)
	return nil
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	p := d.p
	d.p = nil
	return p.Close()
}

func encode(format string, r sink.Report) ([]byte, error) {
	if format == "msgpack" {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return json.Marshal(r)
}

func contentType(format string) string {
	if format == "msgpack" {
		return "application/msgpack"
	}
	return "application/json"
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
