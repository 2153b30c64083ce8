package bot

import (
	"context"
	"strings"
	"sync"

	"food-order/checkout"
	"food-order/config"
	"food-order/lang"
	"food-order/services"
	"food-order/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	sessions *session.Registry
	checkout *checkout.Flow
	log      *zap.Logger

	userLang   map[int64]string // "id" or "en"
	userLangMu sync.RWMutex
}

func New(cfg *config.Config, sessions *session.Registry, flow *checkout.Flow, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:      api,
		cfg:      cfg,
		sessions: sessions,
		checkout: flow,
		log:      log.With(zap.String("bot", api.Self.UserName)),
		userLang: make(map[int64]string),
	}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Daftar restoran"},
			{Command: "search", Description: "Cari menu"},
			{Command: "cart", Description: "Keranjang"},
			{Command: "orders", Description: "Pesanan saya"},
			{Command: "referral", Description: "Kode referral"},
			{Command: "language", Description: "Ganti bahasa"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

// Start processes updates one at a time until ctx is cancelled. Every session is
// only touched from this loop.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		b.log.Warn("set bot commands", zap.Error(err))
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.PreCheckoutQuery != nil {
		b.handlePreCheckout(update.PreCheckoutQuery)
		return
	}
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.SuccessfulPayment != nil {
		b.handleSuccessfulPayment(ctx, chatID, userID, msg.SuccessfulPayment)
		return
	}

	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/start":
		b.handleStart(ctx, chatID, userID)
	case text == "/menu":
		b.sendTenants(ctx, chatID, userID, 0)
	case text == "/cart":
		b.showCart(ctx, chatID, userID, 0)
	case text == "/orders":
		b.handleOrders(ctx, chatID, userID)
	case text == "/language":
		b.handleLanguage(ctx, chatID, userID)
	case strings.HasPrefix(text, "/search"):
		b.handleSearch(ctx, chatID, userID, strings.TrimSpace(strings.TrimPrefix(text, "/search")))
	case strings.HasPrefix(text, "/referral"):
		b.handleReferral(ctx, chatID, userID, strings.TrimSpace(strings.TrimPrefix(text, "/referral")))
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendLang(ctx context.Context, chatID, userID int64, key string, args ...interface{}) {
	b.send(chatID, lang.T(b.getLang(ctx, userID), key, args...))
}

// sendOrEdit edits editMsgID in place when it is set, otherwise sends a new message.
func (b *Bot) sendOrEdit(chatID int64, editMsgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	var c tgbotapi.Chattable
	if editMsgID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, editMsgID, text)
		edit.ParseMode = tgbotapi.ModeMarkdown
		edit.ReplyMarkup = kb
		c = edit
	} else {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if kb != nil {
			msg.ReplyMarkup = *kb
		}
		c = msg
	}
	if _, err := b.api.Send(c); err != nil {
		if strings.Contains(err.Error(), "not modified") {
			return
		}
		b.log.Error("send card", zap.Int64("chat_id", chatID), zap.Int("edit_msg_id", editMsgID), zap.Error(err))
	}
}

func (b *Bot) getLang(ctx context.Context, userID int64) string {
	b.userLangMu.RLock()
	l := b.userLang[userID]
	b.userLangMu.RUnlock()
	if lang.Valid(l) {
		return l
	}
	if stored, ok := services.GetCustomerLanguage(ctx, userID); ok && lang.Valid(stored) {
		b.setLang(userID, stored)
		return stored
	}
	if lang.Valid(b.cfg.Lang) {
		return b.cfg.Lang
	}
	return lang.Id
}

func (b *Bot) setLang(userID int64, langCode string) {
	if !lang.Valid(langCode) {
		return
	}
	b.userLangMu.Lock()
	defer b.userLangMu.Unlock()
	b.userLang[userID] = langCode
}

func (b *Bot) handleStart(ctx context.Context, chatID, userID int64) {
	s := b.sessions.Get(userID)
	s.Sel.Dismiss()
	b.sendTenants(ctx, chatID, userID, 0)
}

func (b *Bot) handleLanguage(ctx context.Context, chatID, userID int64) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Bahasa Indonesia", "lang:id"),
			tgbotapi.NewInlineKeyboardButtonData("English", "lang:en"),
		),
	)
	msg := tgbotapi.NewMessage(chatID, lang.T(b.getLang(ctx, userID), "choose_lang"))
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) handleOrders(ctx context.Context, chatID, userID int64) {
	l := b.getLang(ctx, userID)
	orders, err := services.ListOrdersByUserID(ctx, userID, 20)
	if err != nil {
		b.log.Error("list orders", zap.Int64("user_id", userID), zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}
	b.send(chatID, services.BuildOrderHistory(orders, l))
}

func (b *Bot) handleReferral(ctx context.Context, chatID, userID int64, code string) {
	if code == "" {
		b.sendLang(ctx, chatID, userID, "referral_usage")
		return
	}
	s := b.sessions.Get(userID)
	b.sendLang(ctx, chatID, userID, "referral_saved", s.SetReferral(code))
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	msgID := cq.Message.MessageID
	userID := cq.From.ID
	data := cq.Data

	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Debug("answer callback", zap.Error(err))
	}

	switch {
	case data == "noop":
	case data == "lang:id" || data == "lang:en":
		langCode := strings.TrimPrefix(data, "lang:")
		if err := services.SetCustomerLanguage(ctx, userID, langCode); err != nil {
			b.log.Warn("save language", zap.Int64("user_id", userID), zap.Error(err))
		}
		b.setLang(userID, langCode)
		b.send(chatID, lang.T(langCode, "language_changed"))
	case data == "home":
		b.sendTenants(ctx, chatID, userID, msgID)
	case data == "back":
		if s := b.sessions.Get(userID); s.TenantID != "" {
			b.sendTenantMenu(ctx, chatID, userID, s.TenantID, msgID)
		} else {
			b.sendTenants(ctx, chatID, userID, msgID)
		}
	case strings.HasPrefix(data, "tenant:"):
		b.sendTenantMenu(ctx, chatID, userID, strings.TrimPrefix(data, "tenant:"), msgID)
	case strings.HasPrefix(data, "item:"):
		b.openItem(ctx, chatID, userID, strings.TrimPrefix(data, "item:"))
	case data == "sel:inc", data == "sel:dec":
		b.changeSelection(ctx, chatID, userID, msgID, data == "sel:inc")
	case data == "sel:add":
		b.commitSelection(ctx, chatID, userID, msgID)
	case data == "sel:close":
		b.closeSelection(chatID, userID, msgID)
	case data == "cart":
		b.showCart(ctx, chatID, userID, msgID)
	case data == "cart:clear":
		s := b.sessions.Get(userID)
		s.Cart.Clear()
		s.ResetCheckout()
		b.sendOrEdit(chatID, msgID, lang.T(b.getLang(ctx, userID), "cart_cleared"), nil)
	case strings.HasPrefix(data, "qty:"):
		itemID, qty, ok := parseQtyCallback(data)
		if !ok {
			return
		}
		b.sessions.Get(userID).Cart.SetQuantity(itemID, qty)
		b.showCart(ctx, chatID, userID, msgID)
	case data == "checkout":
		b.showCheckout(ctx, chatID, userID, msgID)
	case strings.HasPrefix(data, "pay:"):
		b.choosePayment(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "pay:"))
	case data == "pay_now":
		b.payNow(ctx, chatID, userID, msgID)
	}
}
