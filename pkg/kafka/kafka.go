package kafka

import (
	"github.com/IBM/sarama"
)

type Config struct {
	Enabled bool     `yaml:"enabled" envconfig:"KAFKA_ENABLED" default:"false"`
	Addrs   []string `yaml:"addrs" envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	Topic   string   `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"shareit.bookings"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
