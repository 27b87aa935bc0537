package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/avkozyreva/tg-splitbot/internal/logger"
)

const configFile = "data/config.yaml"

type Config struct {
	Token              string   `yaml:"token"`              // Токен бота в телеграме.
	ConnectionStringDB string   `yaml:"ConnectionStringDB"` // Строка подключения к базе данных.
	KafkaTopic         string   `yaml:"KafkaTopic"`         // Наименование топика Kafka для запросов сводок.
	BrokersList        []string `yaml:"BrokersList"`        // Список адресов брокеров сообщений (адрес Kafka).
	DigestSecret       string   `yaml:"DigestSecret"`       // Общий секрет для служебных HTTP-запросов сводок.
	BotDigestURL       string   `yaml:"BotDigestURL"`       // URL приёмника сводок на стороне бота.
	DigestListenAddr   string   `yaml:"DigestListenAddr"`   // Адрес приёмника сводок на стороне бота.
	TriggerListenAddr  string   `yaml:"TriggerListenAddr"`  // Адрес внешнего триггера сервиса сводок.
	DigestPeriodHours  int64    `yaml:"DigestPeriodHours"`  // Периодичность плановой рассылки сводок (в часах).
}

type Service struct {
	config Config
}

func New() (*Service, error) {
	s := &Service{}

	rawYAML, err := os.ReadFile(configFile)
	if err != nil {
		logger.Error("Ошибка reading config file", "err", err)
		return nil, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		logger.Error("Ошибка parsing yaml", "err", err)
		return nil, errors.Wrap(err, "parsing yaml")
	}

	return s, nil
}

func (s *Service) Token() string {
	return s.config.Token
}

func (s *Service) GetConfig() Config {
	return s.config
}
