// Package bot is the Telegram front-end. It parses commands, prompts for
// free-text dates, and delivers rendered reports, splitting messages the
// core flags as oversized. All sales logic lives in internal/report.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"preetosbot/internal/config"
	apperrors "preetosbot/internal/errors"
	"preetosbot/internal/infrastructure"
	"preetosbot/internal/insights"
	"preetosbot/internal/report"
	"preetosbot/internal/session"
)

const welcomeMessage = `Welcome to the Preetos.ai bot!

Available commands:
/sales_today - Today's sales analysis with AI
/sales_this_week - This week's sales analysis with AI
/sales_date - Sales analysis for a date you pick`

// userDateLayouts are the spellings accepted from a free-text date reply.
var userDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Bot runs the Telegram update loop.
type Bot struct {
	api        *tgbotapi.BotAPI
	builder    *report.Builder
	summarizer insights.Summarizer
	sessions   *session.Store
	logger     *slog.Logger
	loc        *time.Location

	perChatRate rate.Limit

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

// New connects to Telegram and assembles the front-end.
func New(cfg config.TelegramConfig, loc *time.Location, builder *report.Builder, summarizer insights.Summarizer, sessions *session.Store, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}

	logger.Info("telegram bot authorized", "username", api.Self.UserName)

	return &Bot{
		api:         api,
		builder:     builder,
		summarizer:  summarizer,
		sessions:    sessions,
		logger:      logger,
		loc:         loc,
		perChatRate: rate.Limit(cfg.CommandsPerMinute / 60.0),
		limiters:    make(map[int64]*rate.Limiter),
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command())
		return
	}

	// A pending /sales_date prompt consumes the next free-text message.
	if b.sessions.Consume(chatID) {
		b.handleDateReply(ctx, chatID, msg.Text)
		return
	}

	text := strings.ToLower(msg.Text)
	if strings.Contains(text, "help") {
		b.reply(chatID, welcomeMessage)
		return
	}
	b.reply(chatID, "💡 Use /start to see available commands or type 'help' for assistance.")
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	// Any command supersedes a pending date prompt.
	b.sessions.Clear(chatID)

	switch command {
	case "start", "help":
		b.reply(chatID, welcomeMessage)
		return
	case "sales_date":
		b.sessions.Await(chatID)
		b.reply(chatID, "📅 Which date? Reply with something like 2025-08-01 or 8/1/2025.")
		return
	}

	if !b.allow(chatID) {
		b.reply(chatID, "⏳ Easy there - give the last report a moment before asking for another.")
		return
	}

	switch command {
	case "sales_today":
		b.reply(chatID, "📊 Analyzing today's sales data...")
		now := time.Now().In(b.loc)
		b.deliver(ctx, chatID, "command", func() (*report.Report, error) {
			return b.builder.BuildDay(ctx, now)
		})
	case "sales_this_week":
		b.reply(chatID, "📊 Analyzing this week's sales data...")
		first, last := weekBounds(time.Now().In(b.loc))
		b.deliver(ctx, chatID, "command", func() (*report.Report, error) {
			return b.builder.BuildRange(ctx, first, last)
		})
	default:
		b.reply(chatID, "💡 Unknown command. Use /start to see what I can do.")
	}
}

func (b *Bot) handleDateReply(ctx context.Context, chatID int64, text string) {
	day, err := parseUserDate(text, b.loc)
	if err != nil {
		b.reply(chatID, "❌ I couldn't read that date. Try a format like 2025-08-01 or 8/1/2025.")
		return
	}

	b.reply(chatID, fmt.Sprintf("📊 Analyzing sales for %s...", day.Format("Jan 02, 2006")))
	b.deliver(ctx, chatID, "command", func() (*report.Report, error) {
		return b.builder.BuildDay(ctx, day)
	})
}

// SendScheduledReport builds today's report and pushes it to the chat,
// used by the cron scheduler.
func (b *Bot) SendScheduledReport(ctx context.Context, chatID int64) {
	now := time.Now().In(b.loc)
	b.deliver(ctx, chatID, "schedule", func() (*report.Report, error) {
		return b.builder.BuildDay(ctx, now)
	})
}

// deliver runs a report build, attaches the best-effort summary, and sends
// the result, splitting when the core flags the text as oversized.
func (b *Bot) deliver(ctx context.Context, chatID int64, trigger string, build func() (*report.Report, error)) {
	rep, err := build()
	if err != nil {
		infrastructure.ReportFailures.WithLabelValues(trigger).Inc()
		b.logger.ErrorContext(ctx, "report build failed", "chat_id", chatID, "error", err)
		switch {
		case apperrors.IsNoData(err):
			b.reply(chatID, "❌ No order data found")
		case apperrors.IsSourceUnavailable(err):
			b.reply(chatID, "❌ Google Sheets connection not available")
		default:
			b.reply(chatID, "❌ Error analyzing sales data")
		}
		return
	}

	text, _ := rep.Render()
	rep.Insights = insights.BestEffort(ctx, b.summarizer, text, b.logger)

	infrastructure.ReportsGenerated.WithLabelValues(trigger).Inc()
	infrastructure.LedgerRowsExcluded.Add(float64(rep.ExcludedRows()))

	full, exceeds := rep.Render()
	if !exceeds {
		b.reply(chatID, full)
		return
	}
	for _, part := range rep.RenderParts() {
		b.reply(chatID, part)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("telegram send failed", "chat_id", chatID, "error", err)
	}
}

// allow rate-limits report commands per chat.
func (b *Bot) allow(chatID int64) bool {
	b.mu.Lock()
	limiter, ok := b.limiters[chatID]
	if !ok {
		limiter = rate.NewLimiter(b.perChatRate, 2)
		b.limiters[chatID] = limiter
	}
	b.mu.Unlock()
	return limiter.Allow()
}

// weekBounds returns the Sunday-to-Saturday week containing now.
func weekBounds(now time.Time) (time.Time, time.Time) {
	sunday := now.AddDate(0, 0, -int(now.Weekday()))
	return sunday, sunday.AddDate(0, 0, 6)
}

// parseUserDate reads a free-text date reply in any accepted layout.
func parseUserDate(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range userDateLayouts {
		if day, err := time.ParseInLocation(layout, text, loc); err == nil {
			return day, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", text)
}
