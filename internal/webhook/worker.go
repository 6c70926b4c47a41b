package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow/internal/config"
	"github.com/sirupsen/logrus"
)

// popTimeout ограничивает BRPOP, чтобы воркер замечал остановку
const popTimeout = 5 * time.Second

// WebhookWorker - структура для обработки и отправки вебхуков
type WebhookWorker struct {
	queue      Queue
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
	clock      clockwork.Clock
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(queue Queue, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		queue:  queue,
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		clock: clockwork.NewRealClock(),
	}
}

// Start запускает горутину для обработки очереди вебхуков. Канал закрывается после остановки.
func (w *WebhookWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	w.logger.Info("Starting webhook worker...")
	go func() {
		defer close(done)
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping webhook worker.")
				return
			}

			payload, err := w.queue.Pop(ctx, popTimeout)
			if err != nil {
				if errors.Is(err, ErrQueueEmpty) || ctx.Err() != nil {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop webhook event from queue")
				w.sleep(ctx, w.cfg.WebhookBaseDelay)
				continue
			}

			w.processWebhookEvent(ctx, payload)
		}
	}()
	return done
}

func (w *WebhookWorker) processWebhookEvent(ctx context.Context, payload []byte) {
	log := w.logger.WithField("method", "processWebhookEvent")
	log.Debug("Processing webhook event...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return
	}

	maxRetries := max(w.cfg.WebhookMaxRetries, 1)
	delay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		err := w.deliver(ctx, payload)
		if err == nil {
			log.Info("Webhook delivered successfully.")
			return
		}
		if i == maxRetries-1 {
			log.WithError(err).Errorf("Failed to deliver webhook after %d attempts.", maxRetries)
			return
		}

		log.WithError(err).Warnf("Webhook delivery failed. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
		if !w.sleep(ctx, delay) {
			log.Warn("Webhook delivery aborted by shutdown")
			return
		}
		delay *= 2 // Экспоненциальная задержка
	}
}

// deliver выполняет одну попытку отправки
func (w *WebhookWorker) deliver(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(payload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// sleep ждет d и возвращает false, если контекст отменен раньше
func (w *WebhookWorker) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-w.clock.After(d):
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
