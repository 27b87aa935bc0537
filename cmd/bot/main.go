package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/avkozyreva/tg-splitbot/internal/cache"
	"github.com/avkozyreva/tg-splitbot/internal/clients/tg"
	"github.com/avkozyreva/tg-splitbot/internal/config"
	"github.com/avkozyreva/tg-splitbot/internal/helpers/dbutils"
	"github.com/avkozyreva/tg-splitbot/internal/helpers/kafka"
	"github.com/avkozyreva/tg-splitbot/internal/logger"
	"github.com/avkozyreva/tg-splitbot/internal/metrics"
	"github.com/avkozyreva/tg-splitbot/internal/model/db"
	"github.com/avkozyreva/tg-splitbot/internal/model/messages"
	"github.com/avkozyreva/tg-splitbot/internal/tasks/digestserver"
	"github.com/avkozyreva/tg-splitbot/internal/tracing"
)

// Параметры по умолчанию (могут быть изменены через config)
var (
	connectionStringDB = ""                         // Строка подключения к базе данных.
	kafkaTopic         = "tgsplitbot"               // Наименование топика Kafka.
	brokersList        = []string{"localhost:9092"} // Список адресов брокеров сообщений (адрес Kafka).
	digestSecret       = ""                         // Общий секрет служебных запросов сводок.
	digestListenAddr   = "0.0.0.0:7002"             // Адрес приёмника готовых сводок.
)

func main() {

	logger.Info("Старт приложения")

	ctx := context.Background()

	config, err := config.New()
	if err != nil {
		logger.Fatal("Ошибка получения файла конфигурации:", "err", err)
	}

	// Изменение параметров по умолчанию из заданной конфигурации.
	setConfigSettings(config.GetConfig())

	// Оборачивание в Middleware функции обработки сообщения для метрик и трейсинга.
	tgProcessingFuncHandler := tg.HandlerFunc(tg.ProcessingMessages)
	tgProcessingFuncHandler = metrics.MetricsMiddleware(tgProcessingFuncHandler)
	tgProcessingFuncHandler = tracing.TracingMiddleware(tgProcessingFuncHandler)

	// Инициализация телеграм клиента.
	tgClient, err := tg.New(config, tgProcessingFuncHandler)
	if err != nil {
		logger.Fatal("Ошибка инициализации ТГ-клиента:", "err", err)
	}

	// Инициализация хранилища (подключение к базе данных).
	dbconn, err := dbutils.NewDBConnect(connectionStringDB)
	if err != nil {
		logger.Fatal("Ошибка подключения к базе данных:", "err", err)
	}
	// БД книг расходов групп.
	ledgerStorage := db.NewLedgerStorage(dbconn)

	ctx, cancel := signal.NotifyContext(ctx,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancel()

	// Инициализация кэша для кэширования сводок по чатам.
	cacheLRU := cache.NewLRU(5)

	// Инициализация кафки для отправки запросов на построение сводок.
	kafkaProducer, err := kafka.NewSyncProducer(brokersList, kafkaTopic)
	if err != nil {
		logger.Fatal("Ошибка инициализации кафки для отправки сообщений:", "err", err)
	}

	// Инициализация основной модели.
	msgModel := messages.New(ctx, tgClient, ledgerStorage, cacheLRU, kafkaProducer)

	// Запуск приёмника готовых сводок от сервиса сводок.
	digestserver.StartDigestServer(digestListenAddr, digestSecret, msgModel)

	// Запуск ТГ-клиента.
	tgClient.ListenUpdates(msgModel)

	logger.Info("Завершение приложения")
}

// Замена параметров по умолчанию параметрами из конфиг.файла.
func setConfigSettings(config config.Config) {
	if config.ConnectionStringDB != "" {
		connectionStringDB = config.ConnectionStringDB
	}
	if config.KafkaTopic != "" {
		kafkaTopic = config.KafkaTopic
	}
	if len(config.BrokersList) > 0 {
		brokersList = config.BrokersList
	}
	if config.DigestSecret != "" {
		digestSecret = config.DigestSecret
	}
	if config.DigestListenAddr != "" {
		digestListenAddr = config.DigestListenAddr
	}
}
