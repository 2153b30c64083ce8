package bot

import (
	"fmt"
	"strconv"
	"strings"

	"food-order/cart"
	"food-order/lang"
	"food-order/models"
	"food-order/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram counts IDR in 1/100 units, menu prices are whole rupiah.
const invoiceAmountScale = 100

// cardMarkup converts OrderCardContent.Buttons to Telegram inline keyboard (URL vs callback).
func cardMarkup(c services.OrderCardContent) *tgbotapi.InlineKeyboardMarkup {
	if len(c.Buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			if btn.URL != "" {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
			} else {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
			}
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func tenantsKeyboard(tenants []models.Tenant) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tenants {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Name, "tenant:"+t.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// cartBadge is the bottom bar of the menu: "2 item | Diantar dari Rustic Grill".
func cartBadge(count int, tenantName, langCode string) string {
	if tenantName == "" {
		return lang.T(langCode, "cart_badge_plain", count)
	}
	return lang.T(langCode, "cart_badge", count, tenantName)
}

// md escapes catalog text for messages sent with ModeMarkdown.
func md(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}

func menuText(t models.Tenant, items []models.MenuItem, c *cart.Store, langCode string) string {
	var sb strings.Builder
	sb.WriteString(lang.T(langCode, "menu_header", md(t.Name)))
	if len(items) == 0 {
		sb.WriteString("\n\n" + lang.T(langCode, "menu_empty"))
	}
	for _, it := range items {
		fmt.Fprintf(&sb, "\n\n*%s* — %s", md(it.Name), cart.FormatCurrency(it.Price))
		if it.Description != "" {
			sb.WriteString("\n" + md(it.Description))
		}
		if q := c.Quantity(it.ID); q > 0 {
			fmt.Fprintf(&sb, "\n🛒 × %d", q)
		}
	}
	return sb.String()
}

func menuKeyboard(t models.Tenant, items []models.MenuItem, c *cart.Store, langCode string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s · %s", lang.T(langCode, "add"), it.Name),
				"item:"+it.ID,
			),
		))
	}
	if n := c.Count(); n > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 "+cartBadge(n, t.Name, langCode), "cart"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(lang.T(langCode, "back"), "home"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func selectionText(item models.MenuItem, langCode string) string {
	text := fmt.Sprintf("*%s*\n%s", md(item.Name), cart.FormatCurrency(item.Price))
	if item.Description != "" {
		text += "\n\n" + md(item.Description)
	}
	return text
}

func selectionKeyboard(item models.MenuItem, qty int, langCode string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", "sel:dec"),
			tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(qty), "noop"),
			tgbotapi.NewInlineKeyboardButtonData("➕", "sel:inc"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s — %s", lang.T(langCode, "add_to_cart"), cart.FormatCurrency(item.Price*int64(qty))),
				"sel:add",
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(lang.T(langCode, "close"), "sel:close"),
		),
	)
}

// addedKeyboard follows a committed selection: go to cart or back to the menu.
func addedKeyboard(tenantID string, count int, tenantName, langCode string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 "+cartBadge(count, tenantName, langCode), "cart"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(lang.T(langCode, "back"), "tenant:"+tenantID),
		),
	)
}

func invoicePrices(r models.Receipt) []tgbotapi.LabeledPrice {
	prices := make([]tgbotapi.LabeledPrice, 0, len(r.Lines))
	for _, l := range r.Lines {
		prices = append(prices, tgbotapi.LabeledPrice{
			Label:  fmt.Sprintf("%s × %d", l.Name, l.Qty),
			Amount: int(l.Price * int64(l.Qty) * invoiceAmountScale),
		})
	}
	return prices
}

func invoiceTotal(r models.Receipt) int {
	return int(r.ItemsTotal * invoiceAmountScale)
}

// parseQtyCallback parses "qty:<itemID>:<n>".
func parseQtyCallback(data string) (itemID string, qty int, ok bool) {
	rest, found := strings.CutPrefix(data, "qty:")
	if !found {
		return "", 0, false
	}
	i := strings.LastIndexByte(rest, ':')
	if i <= 0 {
		return "", 0, false
	}
	qty, err := strconv.Atoi(rest[i+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:i], qty, true
}

func cartTotalText(r models.Receipt) string {
	return cart.FormatCurrency(r.ItemsTotal)
}
