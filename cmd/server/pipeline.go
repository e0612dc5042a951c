package main

import (
	"log/slog"

	"vitaran/internal/audit"
	"vitaran/internal/platform/config"
	"vitaran/internal/platform/kafka/producer"
)

// buildAuditPipeline sets up the audit publisher. With brokers configured,
// events flow to Kafka; otherwise they are discarded through the noop
// producer so the services never special-case a missing sink.
func buildAuditPipeline(cfg config.Server, log *slog.Logger) (*audit.Publisher, *producer.Producer, error) {
	if cfg.KafkaBrokers == "" {
		log.Warn("kafka not configured, audit events will be discarded")
		return audit.NewPublisher(audit.NewKafkaStore(producer.NewNoopProducer(), cfg.AuditTopic)), nil, nil
	}

	p, err := producer.New(producer.DefaultConfig(cfg.KafkaBrokers), log)
	if err != nil {
		return nil, nil, err
	}
	return audit.NewPublisher(audit.NewKafkaStore(p, cfg.AuditTopic)), p, nil
}
