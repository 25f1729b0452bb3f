package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ChristelOko/BarometreHED-sub002/internal/domain"
)

// Surface is the platform notification display. Display is best-effort;
// RequestPermission prompts the user at most once per call.
type Surface interface {
	RequestPermission(ctx context.Context, u *domain.User) (domain.PermissionState, error)
	Display(ctx context.Context, u *domain.User, title, body, actionURL string) error
}

// TelegramSurface delivers notifications through a Telegram bot. A user with
// a linked chat that accepts messages counts as granted; a user without a
// linked chat, or whose chat rejects the prompt, counts as denied.
type TelegramSurface struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
}

// NewTelegramSurface wraps an authorized bot client.
func NewTelegramSurface(bot *tgbotapi.BotAPI, log *zap.Logger) *TelegramSurface {
	return &TelegramSurface{bot: bot, log: log}
}

// RequestPermission sends the opt-in prompt to the linked chat and resolves
// the permission from the outcome.
func (s *TelegramSurface) RequestPermission(_ context.Context, u *domain.User) (domain.PermissionState, error) {
	if u.TelegramChatID == nil {
		return domain.PermissionDenied, nil
	}
	msg := tgbotapi.NewMessage(*u.TelegramChatID,
		"🔔 Les rappels du Baromètre Énergétique sont maintenant actifs sur ce canal.")
	if _, err := s.bot.Send(msg); err != nil {
		s.log.Warn("permission prompt rejected", zap.Error(err), zap.String("user", u.ID))
		return domain.PermissionDenied, nil
	}
	return domain.PermissionGranted, nil
}

// Display sends the notification text to the linked chat.
func (s *TelegramSurface) Display(_ context.Context, u *domain.User, title, body, actionURL string) error {
	if u.TelegramChatID == nil {
		return fmt.Errorf("%w: no linked chat for user %s", domain.ErrPermissionDenied, u.ID)
	}
	text := title + "\n\n" + body
	if actionURL != "" {
		text += "\n\n" + actionURL
	}
	_, err := s.bot.Send(tgbotapi.NewMessage(*u.TelegramChatID, text))
	return err
}

// NoopSurface is used when no bot token is configured: permission prompts
// resolve to denied and displays are dropped, leaving only the history path.
type NoopSurface struct{}

func (NoopSurface) RequestPermission(context.Context, *domain.User) (domain.PermissionState, error) {
	return domain.PermissionDenied, nil
}

func (NoopSurface) Display(context.Context, *domain.User, string, string, string) error {
	return domain.ErrPermissionDenied
}
