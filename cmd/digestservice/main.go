// Сервис построения сводок расходов.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/avkozyreva/tg-splitbot/internal/config"
	"github.com/avkozyreva/tg-splitbot/internal/helpers/dbutils"
	"github.com/avkozyreva/tg-splitbot/internal/helpers/kafka"
	"github.com/avkozyreva/tg-splitbot/internal/helpers/net_http"
	"github.com/avkozyreva/tg-splitbot/internal/logger"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
	"github.com/avkozyreva/tg-splitbot/internal/model/db"
	"github.com/avkozyreva/tg-splitbot/internal/model/digest"
	"github.com/avkozyreva/tg-splitbot/internal/tasks/digestscheduler"
)

// Параметры по умолчанию (могут быть изменены через config)
var (
	connectionStringDB = ""                             // Строка подключения к базе данных.
	kafkaTopic         = "tgsplitbot"                   // Наименование топика Kafka.
	brokersList        = []string{"localhost:9092"}     // Список адресов брокеров сообщений (адрес Kafka).
	digestSecret       = ""                             // Общий секрет служебных запросов сводок.
	botDigestURL       = "http://localhost:7002/digest" // URL приёмника сводок на стороне бота.
	triggerListenAddr  = "0.0.0.0:7003"                 // Адрес внешнего триггера рассылки.
	digestPeriod       = 24 * time.Hour                 // Периодичность плановой рассылки сводок.
)

func main() {

	logger.Info("[Digest service] Старт приложения")

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancel()

	config, err := config.New()
	if err != nil {
		logger.Fatal("[Digest service] Ошибка получения файла конфигурации:", "err", err)
	}

	// Изменение параметров по умолчанию из заданной конфигурации.
	setConfigSettings(config.GetConfig())

	// Инициализация хранилища (подключение к базе данных).
	dbconn, err := dbutils.NewDBConnect(connectionStringDB)
	if err != nil {
		logger.Fatal("[Digest service] Ошибка подключения к базе данных:", "err", err)
	}
	// БД книг расходов групп.
	ledgerStorage := db.NewLedgerStorage(dbconn)

	// Инициализация модели сводок (чтение книги, построение, отправка боту).
	httpClient := net_http.New[types.ChatDigest]()
	digestModel := digest.New(ledgerStorage, httpClient, botDigestURL, digestSecret)

	// Запуск плановой рассылки сводок по таймеру.
	digestscheduler.StartDigestScheduler(ctx, digestModel, digestPeriod)

	// Запуск внешнего триггера рассылки.
	digestscheduler.StartTriggerServer(ctx, triggerListenAddr, digestSecret, digestModel)

	// Инициализация кафки для получения запросов на построение сводок.
	kafkaConsumer, err := kafka.NewConsumer(ctx, brokersList, kafkaTopic)
	if err != nil {
		logger.Fatal("[Digest service] Ошибка инициализации кафки:", "err", err)
	}

	// Назначение функции, которая будет обрабатывать входящие сообщения из кафки.
	handlerFunc := func(ctx context.Context, key string, value string) error {
		return digestModel.HandleDigestRequest(ctx, key, value)
	}

	// Запуск чтения сообщений из очереди (блокируется до завершения контекста).
	if err := kafkaConsumer.RunConsume(handlerFunc); err != nil {
		logger.Fatal("[Digest service] Ошибка чтения кафки:", "err", err)
	}

	<-ctx.Done()
	logger.Info("[Digest service] Завершение приложения")
}

// setConfigSettings Замена параметров по умолчанию параметрами из конфиг.файла.
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
	if config.BotDigestURL != "" {
		botDigestURL = config.BotDigestURL
	}
	if config.TriggerListenAddr != "" {
		triggerListenAddr = config.TriggerListenAddr
	}
	if config.DigestPeriodHours > 0 {
		digestPeriod = time.Duration(config.DigestPeriodHours) * time.Hour
	}
}
