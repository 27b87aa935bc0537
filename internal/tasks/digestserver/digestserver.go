package digestserver

import (
	"encoding/json"
	"net/http"

	"github.com/avkozyreva/tg-splitbot/internal/helpers/net_http"
	"github.com/avkozyreva/tg-splitbot/internal/logger"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

// DigestSender Интерфейс модели, принимающей готовые сводки для отправки в чат.
type DigestSender interface {
	SendDigestToChat(digest types.ChatDigest) error
}

// server Приёмник готовых сводок от сервиса сводок.
type server struct {
	msgModel DigestSender
	secret   string
}

// handleDigest Приём сводки POST-запросом с проверкой общего секрета.
func (s *server) handleDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get(net_http.SecretHeader) != s.secret {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var digest types.ChatDigest
	if err := json.NewDecoder(r.Body).Decode(&digest); err != nil {
		logger.Error("Ошибка разбора тела запроса сводки", "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	logger.Debug("Получена сводка", "chatID", digest.ChatID, "periods", len(digest.Periods))

	// Отправка полученной сводки в чат.
	if err := s.msgModel.SendDigestToChat(digest); err != nil {
		http.Error(w, "send error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// StartDigestServer запуск сервиса, принимающего готовые сводки от сервиса сводок.
func StartDigestServer(addr string, secret string, msgModel DigestSender) {
	srv := &server{msgModel: msgModel, secret: secret}
	mux := http.NewServeMux()
	mux.HandleFunc("/digest", srv.handleDigest)

	logger.Info("Старт приёмника сводок", "addr", addr)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Fatal("Ошибка приёмника сводок", "err", err)
		}
	}()
}
