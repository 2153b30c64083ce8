package services

import (
	"fmt"
	"strings"

	"food-order/cart"
	"food-order/lang"
	"food-order/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// OrderCardButton is one inline button (text + callback_data or url).
type OrderCardButton struct {
	Text         string
	CallbackData string
	URL          string // if set, use as URL button instead of callback
}

// OrderCardContent is the text and optional inline keyboard for an order card.
type OrderCardContent struct {
	Text    string
	Buttons [][]OrderCardButton
}

// md escapes text for cards sent with ModeMarkdown.
func md(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}

func writeLines(sb *strings.Builder, lines []models.OrderLine) {
	for _, l := range lines {
		fmt.Fprintf(sb, "• %s × %d — %s\n", md(l.Name), l.Qty, cart.FormatCurrency(l.Price*int64(l.Qty)))
	}
}

// BuildCartCard renders the cart for review: one row of -/+ buttons per line,
// then checkout and clear.
func BuildCartCard(lines []models.OrderLine, total int64, langCode string) OrderCardContent {
	if len(lines) == 0 {
		return OrderCardContent{
			Text:    lang.T(langCode, "cart_empty"),
			Buttons: [][]OrderCardButton{{{Text: lang.T(langCode, "back"), CallbackData: "back"}}},
		}
	}
	var sb strings.Builder
	sb.WriteString("🛒 *" + lang.T(langCode, "cart_label") + ":*\n\n")
	writeLines(&sb, lines)
	fmt.Fprintf(&sb, "\n*%s: %s*", lang.T(langCode, "total"), cart.FormatCurrency(total))

	var rows [][]OrderCardButton
	for _, l := range lines {
		rows = append(rows, []OrderCardButton{
			{Text: "➖", CallbackData: fmt.Sprintf("qty:%s:%d", l.MenuItemID, l.Qty-1)},
			{Text: fmt.Sprintf("%s (%d)", l.Name, l.Qty), CallbackData: "noop"},
			{Text: "➕", CallbackData: fmt.Sprintf("qty:%s:%d", l.MenuItemID, l.Qty+1)},
		})
	}
	rows = append(rows,
		[]OrderCardButton{{Text: lang.T(langCode, "checkout"), CallbackData: "checkout"}},
		[]OrderCardButton{
			{Text: lang.T(langCode, "clear_cart"), CallbackData: "cart:clear"},
			{Text: lang.T(langCode, "back"), CallbackData: "back"},
		},
	)
	return OrderCardContent{Text: sb.String(), Buttons: rows}
}

// BuildCheckoutCard renders the order summary with the payment method choice.
// selected marks the chosen method; the pay button appears once one is chosen.
func BuildCheckoutCard(lines []models.OrderLine, total int64, methods []PaymentOption, selected, referral, langCode string) OrderCardContent {
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "order_summary") + "\n\n")
	writeLines(&sb, lines)
	fmt.Fprintf(&sb, "\n*%s: %s*\n", lang.T(langCode, "total"), cart.FormatCurrency(total))
	if referral != "" {
		sb.WriteString(lang.T(langCode, "referral_label", md(referral)) + "\n")
	}
	sb.WriteString("\n" + lang.T(langCode, "choose_payment"))

	var rows [][]OrderCardButton
	for _, m := range methods {
		text := m.Name
		if m.ID == selected {
			text = "✅ " + text
		}
		rows = append(rows, []OrderCardButton{{Text: text, CallbackData: "pay:" + m.ID}})
	}
	if selected != "" {
		rows = append(rows, []OrderCardButton{{Text: lang.T(langCode, "pay_now"), CallbackData: "pay_now"}})
	}
	rows = append(rows, []OrderCardButton{{Text: lang.T(langCode, "back"), CallbackData: "cart"}})
	return OrderCardContent{Text: sb.String(), Buttons: rows}
}

// PaymentOption is a payment method as shown on the checkout card.
type PaymentOption struct {
	ID   string
	Name string
}

// BuildReceiptCard renders the payment success screen from a receipt snapshot.
func BuildReceiptCard(r models.Receipt, langCode string) OrderCardContent {
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "payment_success") + "\n\n")
	sb.WriteString(lang.T(langCode, "order_ref", ShortRef(r.Ref)) + "\n\n")
	writeLines(&sb, r.Lines)
	fmt.Fprintf(&sb, "\n*%s: %s*", lang.T(langCode, "total"), cart.FormatCurrency(r.ItemsTotal))
	return OrderCardContent{
		Text:    sb.String(),
		Buttons: [][]OrderCardButton{{{Text: lang.T(langCode, "back_home"), CallbackData: "home"}}},
	}
}

func statusLabel(langCode, status string) string {
	switch status {
	case models.OrderStatusPending:
		return lang.T(langCode, "status_pending")
	case models.OrderStatusPaid:
		return lang.T(langCode, "status_paid")
	default:
		return status
	}
}

// BuildOrderHistory renders the /orders list.
func BuildOrderHistory(orders []models.Order, langCode string) string {
	if len(orders) == 0 {
		return lang.T(langCode, "my_orders_empty")
	}
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "my_orders_header"))
	for _, o := range orders {
		fmt.Fprintf(&sb, "%s — %s — %s — %s\n",
			ShortRef(o.Ref), statusLabel(langCode, o.Status), cart.FormatCurrency(o.ItemsTotal), o.CreatedAt.Format("2006-01-02"))
	}
	return sb.String()
}

// ShortRef is the first block of an order ref, enough for a customer to quote.
func ShortRef(ref string) string {
	if i := strings.IndexByte(ref, '-'); i > 0 {
		return strings.ToUpper(ref[:i])
	}
	return strings.ToUpper(ref)
}
