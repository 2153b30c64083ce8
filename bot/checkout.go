package bot

import (
	"context"
	"errors"
	"strings"

	"food-order/checkout"
	"food-order/lang"
	"food-order/models"
	"food-order/services"
	"food-order/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) showCart(ctx context.Context, chatID, userID int64, editMsgID int) {
	s := b.sessions.Get(userID)
	content := services.BuildCartCard(checkout.Snapshot(s.Cart).Lines, s.Cart.Total(), b.getLang(ctx, userID))
	b.sendOrEdit(chatID, editMsgID, content.Text, cardMarkup(content))
}

func (b *Bot) paymentOptions() []services.PaymentOption {
	methods := b.checkout.Methods()
	opts := make([]services.PaymentOption, len(methods))
	for i, m := range methods {
		opts[i] = services.PaymentOption{ID: m.ID, Name: m.Name}
	}
	return opts
}

func (b *Bot) showCheckout(ctx context.Context, chatID, userID int64, editMsgID int) {
	s := b.sessions.Get(userID)
	l := b.getLang(ctx, userID)
	if s.Cart.IsEmpty() {
		b.sendOrEdit(chatID, editMsgID, lang.T(l, "cart_empty"), nil)
		return
	}
	content := services.BuildCheckoutCard(checkout.Snapshot(s.Cart).Lines, s.Cart.Total(), b.paymentOptions(), s.PaymentMethod, s.ReferralCode, l)
	b.sendOrEdit(chatID, editMsgID, content.Text, cardMarkup(content))
}

func (b *Bot) choosePayment(ctx context.Context, chatID, userID int64, editMsgID int, method string) {
	if !b.checkout.KnownMethod(method) {
		b.sendLang(ctx, chatID, userID, "unknown_payment")
		return
	}
	b.sessions.Get(userID).PaymentMethod = method
	b.showCheckout(ctx, chatID, userID, editMsgID)
}

// payNow places the order. With a payment provider the user gets an invoice and
// the order completes on SuccessfulPayment; without one it completes right away.
func (b *Bot) payNow(ctx context.Context, chatID, userID int64, cardMsgID int) {
	s := b.sessions.Get(userID)
	l := b.getLang(ctx, userID)
	r, err := b.checkout.Place(ctx, userID, chatID, s.Cart, s.PaymentMethod, s.ReferralCode)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			b.send(chatID, lang.T(l, "cart_empty"))
		case errors.Is(err, checkout.ErrUnknownPaymentMethod):
			b.send(chatID, lang.T(l, "unknown_payment"))
		default:
			b.log.Error("place order", zap.Int64("user_id", userID), zap.Error(err))
			b.send(chatID, lang.T(l, "order_failed"))
		}
		return
	}
	s.Pending = &r
	if cardMsgID != 0 {
		if err := services.UpsertOrderMessagePointer(ctx, r.Ref, chatID, cardMsgID); err != nil {
			b.log.Warn("save checkout card pointer", zap.String("ref", r.Ref), zap.Error(err))
		}
	}

	if b.cfg.Telegram.PaymentProviderToken == "" {
		b.completeOrder(ctx, chatID, s, r, "")
		return
	}
	b.sendInvoice(chatID, r, l)
}

func (b *Bot) sendInvoice(chatID int64, r models.Receipt, l string) {
	invoice := tgbotapi.NewInvoice(
		chatID,
		lang.T(l, "invoice_title", services.ShortRef(r.Ref)),
		lang.T(l, "invoice_desc", r.ItemsCount, cartTotalText(r)),
		r.Ref,
		b.cfg.Telegram.PaymentProviderToken,
		"order",
		b.cfg.Checkout.Currency,
		invoicePrices(r),
	)
	// nil is sent as JSON null and rejected by the API.
	invoice.SuggestedTipAmounts = []int{}
	if _, err := b.api.Send(invoice); err != nil {
		b.log.Error("send invoice", zap.String("ref", r.Ref), zap.Error(err))
		b.send(chatID, lang.T(l, "payment_failed"))
	}
}

// handlePreCheckout accepts the payment only for the order the user is paying now
// and only for the amount that was placed.
func (b *Bot) handlePreCheckout(q *tgbotapi.PreCheckoutQuery) {
	answer := tgbotapi.PreCheckoutConfig{PreCheckoutQueryID: q.ID, OK: true}
	s := b.sessions.Get(q.From.ID)
	if s.Pending == nil || s.Pending.Ref != q.InvoicePayload || invoiceTotal(*s.Pending) != q.TotalAmount {
		answer.OK = false
		answer.ErrorMessage = lang.T(b.getLang(context.Background(), q.From.ID), "payment_failed")
		b.log.Warn("pre-checkout rejected",
			zap.Int64("user_id", q.From.ID),
			zap.String("payload", q.InvoicePayload),
			zap.Int("total_amount", q.TotalAmount),
		)
	}
	if _, err := b.api.Request(answer); err != nil {
		b.log.Error("answer pre-checkout", zap.String("payload", q.InvoicePayload), zap.Error(err))
	}
}

func (b *Bot) handleSuccessfulPayment(ctx context.Context, chatID, userID int64, p *tgbotapi.SuccessfulPayment) {
	s := b.sessions.Get(userID)
	if s.Pending != nil && s.Pending.Ref == p.InvoicePayload {
		b.completeOrder(ctx, chatID, s, *s.Pending, p.TelegramPaymentChargeID)
		return
	}
	// The session no longer knows this order (restart or a newer order); still record it.
	l := b.getLang(ctx, userID)
	if err := b.checkout.RecordPayment(ctx, p.InvoicePayload, p.TelegramPaymentChargeID); err != nil {
		b.log.Error("record orphan payment", zap.String("ref", p.InvoicePayload), zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}
	b.closeCheckoutCard(ctx, p.InvoicePayload)
	o, err := services.GetOrderByRef(ctx, p.InvoicePayload)
	if err != nil {
		b.log.Warn("load paid order", zap.String("ref", p.InvoicePayload), zap.Error(err))
		b.send(chatID, lang.T(l, "order_ref", services.ShortRef(p.InvoicePayload)))
		return
	}
	b.send(chatID, services.BuildOrderHistory([]models.Order{*o}, l))
}

// closeCheckoutCard strips the buttons from the checkout card of a paid order so
// "Pay now" cannot place it twice.
func (b *Bot) closeCheckoutCard(ctx context.Context, ref string) {
	chatID, msgID, ok, err := services.GetOrderMessagePointer(ctx, ref)
	if err != nil {
		b.log.Warn("load checkout card pointer", zap.String("ref", ref), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.api.Send(edit); err != nil && !strings.Contains(err.Error(), "not modified") {
		b.log.Debug("close checkout card", zap.String("ref", ref), zap.Error(err))
	}
}

// completeOrder shows the receipt and then lets the checkout flow clear the cart.
func (b *Bot) completeOrder(ctx context.Context, chatID int64, s *session.Session, r models.Receipt, chargeID string) {
	l := b.getLang(ctx, s.UserID)
	render := func(r models.Receipt) error {
		content := services.BuildReceiptCard(r, l)
		msg := tgbotapi.NewMessage(chatID, content.Text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if kb := cardMarkup(content); kb != nil {
			msg.ReplyMarkup = *kb
		}
		_, err := b.api.Send(msg)
		return err
	}
	if err := b.checkout.Complete(ctx, s.UserID, r, s.Cart, chargeID, render); err != nil {
		if paidBeforeShutdown(err) {
			b.log.Info("shutdown before cart was settled", zap.String("ref", r.Ref))
			return
		}
		b.log.Error("complete order", zap.String("ref", r.Ref), zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}
	b.closeCheckoutCard(ctx, r.Ref)
	s.ResetCheckout()
	s.Sel.Dismiss()
}

// paidBeforeShutdown reports a Complete error that came from the bot stopping
// during the clear delay. The order is paid and the receipt was shown.
func paidBeforeShutdown(err error) bool {
	return errors.Is(err, checkout.ErrNotSettled)
}
