package repository

import (
	"context"
	"fmt"

	drepo "DelistRadar/internal/domain/repository"
	"DelistRadar/pkg/config"
	dhttp "DelistRadar/pkg/http"
	"DelistRadar/pkg/logger"
)

// TelegramNotifier delivers alerts over the Telegram Bot API. Every
// configured chat target is attempted on each send; a failing target is
// logged and skipped so the rest still receive the alert.
type TelegramNotifier struct {
	apiBase string
	token   string
	targets []config.ChatTarget
	http    *dhttp.Client
	log     *logger.Logger
}

// NewTelegramNotifier creates a Telegram Notifier.
func NewTelegramNotifier(cfg *config.Config, httpClient *dhttp.Client, log *logger.Logger) drepo.Notifier {
	return &TelegramNotifier{
		apiBase: cfg.Telegram.APIBase,
		token:   cfg.Telegram.BotToken,
		targets: cfg.Telegram.Targets,
		http:    httpClient,
		log:     log,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
	MessageThreadID       int    `json:"message_thread_id,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send posts message to every target. It always returns nil; delivery
// failures are per-target and already logged.
func (n *TelegramNotifier) Send(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	for _, t := range n.targets {
		req := sendMessageRequest{
			ChatID:                t.ChatID,
			Text:                  message,
			ParseMode:             "HTML",
			DisableWebPagePreview: true,
			MessageThreadID:       t.ThreadID,
		}

		var resp sendMessageResponse
		err := n.http.SendAndParse(ctx, &dhttp.RequestOptions{
			Method: dhttp.MethodPost,
			URL:    url,
			Body:   req,
		}, &resp)
		if err == nil && !resp.OK {
			err = fmt.Errorf("telegram error %d: %s", resp.ErrorCode, resp.Description)
		}
		if err != nil {
			n.log.Error("telegram send failed",
				logger.String("chat_id", t.ChatID),
				logger.Error(err))
			continue
		}
		n.log.Debug("telegram sent", logger.String("chat_id", t.ChatID))
	}
	return nil
}

// Targets reports how many chat targets are configured.
func (n *TelegramNotifier) Targets() int { return len(n.targets) }
