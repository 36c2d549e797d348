package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
)

// KafkaOutput publishes each record to the topic of the same name. Records
// are keyed by item or order so one key always lands on one partition.
type KafkaOutput struct {
	producer sarama.SyncProducer
	logger   logrus.FieldLogger
}

func saramaConfig(config *models.Config) *sarama.Config {
	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 5
	sc.Producer.Retry.Backoff = 100 * time.Millisecond
	sc.Producer.Return.Successes = true // required by SyncProducer
	sc.Net.DialTimeout = 30 * time.Second
	sc.Net.ReadTimeout = 30 * time.Second
	sc.Net.WriteTimeout = 30 * time.Second
	if config.SessionTimeoutMs > 0 {
		sc.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	} else {
		sc.Consumer.Group.Session.Timeout = 45 * time.Second
	}
	return sc
}

func NewKafkaOutput(config *models.Config, logger logrus.FieldLogger) (*KafkaOutput, error) {
	brokerList := strings.Split(config.KafkaBrokerList, ",")
	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}
	logger.WithField("brokers", brokerList).Info("kafka producer created")
	return NewKafkaOutputWithProducer(producer, logger), nil
}

func NewKafkaOutputWithProducer(producer sarama.SyncProducer, logger logrus.FieldLogger) *KafkaOutput {
	return &KafkaOutput{producer: producer, logger: logger}
}

func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer is closed")
	}
	pm := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	}
	if key := messageKey(msg); key != "" {
		pm.Key = sarama.StringEncoder(key)
	}
	if _, _, err := k.producer.SendMessage(pm); err != nil {
		k.logger.WithError(err).WithField("topic", topic).Error("failed to send message")
		return err
	}
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
