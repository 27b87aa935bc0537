package digestscheduler

import (
	"context"
	"net/http"
	"time"

	"github.com/avkozyreva/tg-splitbot/internal/helpers/net_http"
	"github.com/avkozyreva/tg-splitbot/internal/logger"
)

// DigestRunner Интерфейс построения и рассылки сводок по всем чатам.
type DigestRunner interface {
	RunDigestForAllChats(ctx context.Context) error
}

// StartDigestScheduler Процедура плановой рассылки сводок по таймеру.
func StartDigestScheduler(ctx context.Context, runner DigestRunner, digestPeriod time.Duration) {
	// Создаем таймер на указанную периодичность.
	ticker := time.NewTicker(digestPeriod)
	// Запускаем горутину, рассылающую сводки по таймеру.
	go func() {
		for {
			select {
			case <-ctx.Done():
				// Завершение горутины.
				return
			case <-ticker.C:
				// Запуск процедуры рассылки.
				logger.Info("Плановая рассылка сводок.")
				if err := runner.RunDigestForAllChats(ctx); err != nil {
					logger.Error("Ошибка плановой рассылки сводок:", "err", err)
				}
			}
		}
	}()
}

// StartTriggerServer Запуск внешнего триггера рассылки: POST-запрос
// с общим секретом запускает ту же процедуру, что и таймер.
func StartTriggerServer(ctx context.Context, addr string, secret string, runner DigestRunner) {
	mux := http.NewServeMux()
	mux.HandleFunc("/trigger", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get(net_http.SecretHeader) != secret {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		logger.Info("Рассылка сводок по внешнему триггеру.")
		if err := runner.RunDigestForAllChats(r.Context()); err != nil {
			logger.Error("Ошибка рассылки сводок по триггеру:", "err", err)
			http.Error(w, "digest error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	logger.Info("Старт триггера сводок", "addr", addr)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Fatal("Ошибка триггера сводок", "err", err)
		}
	}()
}
