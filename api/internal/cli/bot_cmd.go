package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"laporan-harian/api/internal/handle"
	"laporan-harian/api/internal/httpserver"
	"laporan-harian/api/internal/telegram"
)

func newBotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Jalankan bot Telegram (polling, atau webhook bila WEBHOOK_URL diisi)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config
			if cfg == nil {
				return errors.New("bot: configuration not loaded")
			}
			token := strings.TrimSpace(cfg.TelegramBotToken)
			if token == "" {
				return errors.New("bot: TELEGRAM_BOT_TOKEN is empty")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			bot, err := tgbotapi.NewBotAPI(token)
			if err != nil {
				return fmt.Errorf("bot: %w", err)
			}
			log := app.log().WithField("component", "telegram")
			if !app.Reporter.Ready() {
				log.Warn("GEMINI_API_KEY is empty; starting degraded")
			}

			r := &telegram.Router{Bot: bot, Reporter: app.Reporter, Timeout: app.timeout(), Log: log}
			mux := handle.New(app.Reporter, app.timeout(), app.log()).Routes()

			g, ctx := errgroup.WithContext(ctx)
			if base := strings.TrimSpace(cfg.WebhookURL); base != "" {
				public, err := telegram.RegisterWebhook(bot, token, base)
				if err != nil {
					return fmt.Errorf("bot: set webhook: %w", err)
				}
				log.WithField("url", public).Info("webhook registered")
				mux.Handle(telegram.WebhookPath(token), telegram.WebhookHandler(func(u tgbotapi.Update) {
					r.HandleUpdate(ctx, u)
				}))
			} else {
				if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
					log.WithError(err).Warn("delete webhook failed")
				}
				g.Go(func() error {
					telegram.RunPolling(ctx, bot, func(u tgbotapi.Update) { r.HandleUpdate(ctx, u) }, log)
					return nil
				})
			}
			g.Go(func() error { return httpserver.Run(ctx, cfg.Addr(), mux, log) })
			err = g.Wait()
			r.Wait()
			return err
		},
	}
}
