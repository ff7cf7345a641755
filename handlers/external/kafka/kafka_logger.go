package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	kafka "github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
)

const (
	errTypeProtoMarshal = "proto-marshal-error"
	errTypeKafkaWrite   = "kafka-write-error"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var (
	kafkaWriter messageWriter
)

func getMetricTags(metricTags []string, errType string) []string {
	return append(metricTags, "error-type:"+errType)
}

// InitKafkaLogger initializes the async writer for prediction events. Logging
// stays disabled when no brokers or topic are configured.
func InitKafkaLogger(appConfigs *configs.AppConfigs) {
	bootstrapServers := appConfigs.Configs.KafkaBootstrapServers
	topic := appConfigs.Configs.KafkaLoggingTopic
	if bootstrapServers == "" || topic == "" {
		logger.Info("Kafka bootstrap servers or topic not configured, prediction logging disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(bootstrapServers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.PercentError("Error delivering prediction events to Kafka", err, appConfigs.Configs.ErrorLoggingPercent)
				metrics.Count("flightdelay.logging.error", int64(len(messages)), getMetricTags(nil, errTypeKafkaWrite))
			}
		},
	}
	logger.Info(fmt.Sprintf("Kafka prediction logger initialised for topic: %s", topic))
}

// Enabled reports whether a writer is configured.
func Enabled() bool {
	return kafkaWriter != nil
}

// PublishPredictionLog sends one prediction event (protobuf) keyed by key.
// The writer is async, so this never waits on the brokers.
func PublishPredictionLog(key string, msg proto.Message) {
	if kafkaWriter == nil {
		return
	}
	if msg == nil {
		logger.Error("Empty proto message for prediction log", fmt.Errorf("key: %s", key))
		return
	}

	data, err := proto.Marshal(msg)
	var metricTags []string
	if err != nil {
		logger.Error("Error marshalling proto for prediction log:", err)
		metrics.Count("flightdelay.logging.error", 1, getMetricTags(metricTags, errTypeProtoMarshal))
		return
	}

	if err := kafkaWriter.WriteMessages(context.Background(), kafka.Message{Key: []byte(key), Value: data}); err != nil {
		logger.Error("Error sending prediction log to Kafka:", err)
		metrics.Count("flightdelay.logging.error", 1, getMetricTags(metricTags, errTypeKafkaWrite))
		return
	}

	metrics.Count("flightdelay.logging.kafka_sent", 1, metricTags)
}

func CloseKafkaLogger() {
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("Error closing Kafka writer:", err)
		}
	}
}
