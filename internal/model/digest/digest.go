package digest

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/avkozyreva/tg-splitbot/internal/logger"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
	"github.com/avkozyreva/tg-splitbot/internal/model/summary"
)

// LedgerReader Интерфейс чтения книг расходов для построения сводок.
type LedgerReader interface {
	LoadSnapshot(ctx context.Context, chatID int64) (types.LedgerSnapshot, error)
	ListChats(ctx context.Context) ([]int64, error)
}

// DigestPoster Интерфейс отправки готовой сводки боту.
type DigestPoster interface {
	PostJsonToURL(ctx context.Context, url string, secret string, payload *types.ChatDigest) error
}

// Model Модель сервиса сводок: чтение книги, построение сводки, отправка боту.
type Model struct {
	storage LedgerReader
	poster  DigestPoster
	botURL  string
	secret  string
}

func New(storage LedgerReader, poster DigestPoster, botURL string, secret string) *Model {
	return &Model{
		storage: storage,
		poster:  poster,
		botURL:  botURL,
		secret:  secret,
	}
}

// HandleDigestRequest Обработка запроса на построение сводки из очереди.
// Ключ сообщения - идентификатор чата.
func (m *Model) HandleDigestRequest(ctx context.Context, key string, value string) error {
	if key == "" || value == "" {
		logger.Error("Сообщение кафка содержит пустой ключ или значение.")
		return nil
	}
	chatID, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		logger.Error("Сообщение кафка содержит некорректный ключ.", "err", err)
		return nil
	}
	return m.BuildAndSendDigest(ctx, chatID)
}

// BuildAndSendDigest Построение сводки по книге чата и отправка её боту.
func (m *Model) BuildAndSendDigest(ctx context.Context, chatID int64) error {
	snap, err := m.storage.LoadSnapshot(ctx, chatID)
	if err != nil {
		return errors.Wrap(err, "Ошибка чтения книги для сводки")
	}

	digest := summary.Build(snap, time.Now())

	if err := m.poster.PostJsonToURL(ctx, m.botURL, m.secret, &digest); err != nil {
		return errors.Wrap(err, "Ошибка отправки сводки боту")
	}
	return nil
}

// RunDigestForAllChats Плановая рассылка: сводка строится и отправляется
// для каждого известного чата. Ошибка по одному чату не прерывает рассылку.
func (m *Model) RunDigestForAllChats(ctx context.Context) error {
	chats, err := m.storage.ListChats(ctx)
	if err != nil {
		return errors.Wrap(err, "Ошибка получения списка чатов")
	}

	var resErr error
	for _, chatID := range chats {
		if err := m.BuildAndSendDigest(ctx, chatID); err != nil {
			logger.Error("Ошибка рассылки сводки", "chatID", chatID, "err", err)
			resErr = multierr.Append(resErr, err)
		}
	}
	return resErr
}
