package bot

import (
	"context"
	"errors"

	"food-order/lang"
	"food-order/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) sendTenants(ctx context.Context, chatID, userID int64, editMsgID int) {
	l := b.getLang(ctx, userID)
	tenants, err := services.ListTenants(ctx)
	if err != nil {
		b.log.Error("list tenants", zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}
	if len(tenants) == 0 {
		b.sendOrEdit(chatID, editMsgID, lang.T(l, "no_tenants"), nil)
		return
	}
	kb := tenantsKeyboard(tenants)
	b.sendOrEdit(chatID, editMsgID, lang.T(l, "welcome"), &kb)
}

func (b *Bot) sendTenantMenu(ctx context.Context, chatID, userID int64, tenantID string, editMsgID int) {
	l := b.getLang(ctx, userID)
	tenant, err := services.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			b.send(chatID, lang.T(l, "tenant_not_found"))
			return
		}
		b.log.Error("get tenant", zap.String("tenant_id", tenantID), zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}
	items, err := services.ListMenuByTenant(ctx, tenantID)
	if err != nil {
		b.log.Error("list menu", zap.String("tenant_id", tenantID), zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}

	s := b.sessions.Get(userID)
	s.TenantID = tenant.ID
	kb := menuKeyboard(*tenant, items, s.Cart, l)
	b.sendOrEdit(chatID, editMsgID, menuText(*tenant, items, s.Cart, l), &kb)
}

// handleSearch shows the items of the last browsed restaurant that match query.
func (b *Bot) handleSearch(ctx context.Context, chatID, userID int64, query string) {
	l := b.getLang(ctx, userID)
	if query == "" {
		b.send(chatID, lang.T(l, "search_usage"))
		return
	}
	s := b.sessions.Get(userID)
	if s.TenantID == "" {
		b.sendTenants(ctx, chatID, userID, 0)
		return
	}
	tenant, err := services.GetTenant(ctx, s.TenantID)
	if err != nil {
		b.log.Error("get tenant", zap.String("tenant_id", s.TenantID), zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}
	items, err := services.ListMenuByTenant(ctx, s.TenantID)
	if err != nil {
		b.log.Error("list menu", zap.String("tenant_id", s.TenantID), zap.Error(err))
		b.send(chatID, lang.T(l, "something_wrong"))
		return
	}
	found := services.FilterMenu(items, query)
	if len(found) == 0 {
		b.send(chatID, lang.T(l, "search_empty", query))
		return
	}
	kb := menuKeyboard(*tenant, found, s.Cart, l)
	b.sendOrEdit(chatID, 0, menuText(*tenant, found, s.Cart, l), &kb)
}

// openItem shows the selection sheet for an item as a new message, so the menu
// stays visible above it.
func (b *Bot) openItem(ctx context.Context, chatID, userID int64, itemID string) {
	l := b.getLang(ctx, userID)
	item, err := services.GetMenuItem(ctx, itemID)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			b.log.Error("get menu item", zap.String("item_id", itemID), zap.Error(err))
		}
		b.send(chatID, lang.T(l, "item_not_found"))
		return
	}
	s := b.sessions.Get(userID)
	s.Sel.Open(*item)
	kb := selectionKeyboard(*item, s.Sel.Quantity(), l)
	b.sendOrEdit(chatID, 0, selectionText(*item, l), &kb)
}

func (b *Bot) changeSelection(ctx context.Context, chatID, userID int64, msgID int, inc bool) {
	s := b.sessions.Get(userID)
	item, ok := s.Sel.Item()
	if !ok {
		b.deleteMessage(chatID, msgID)
		return
	}
	if inc {
		s.Sel.Increment()
	} else {
		s.Sel.Decrement()
	}
	l := b.getLang(ctx, userID)
	kb := selectionKeyboard(item, s.Sel.Quantity(), l)
	b.sendOrEdit(chatID, msgID, selectionText(item, l), &kb)
}

func (b *Bot) commitSelection(ctx context.Context, chatID, userID int64, msgID int) {
	s := b.sessions.Get(userID)
	item, ok := s.Sel.Item()
	if !ok || !s.Sel.Commit(s.Cart) {
		b.deleteMessage(chatID, msgID)
		return
	}
	l := b.getLang(ctx, userID)
	tenantName := ""
	if t, err := services.GetTenant(ctx, item.TenantID); err == nil {
		tenantName = t.Name
	}
	kb := addedKeyboard(item.TenantID, s.Cart.Count(), tenantName, l)
	b.sendOrEdit(chatID, msgID, selectionText(item, l)+"\n\n"+lang.T(l, "product_added"), &kb)
	b.log.Debug("cart add",
		zap.Int64("user_id", userID),
		zap.String("item_id", item.ID),
		zap.Int("cart_count", s.Cart.Count()),
		zap.Int64("cart_total", s.Cart.Total()),
	)
}

func (b *Bot) closeSelection(chatID, userID int64, msgID int) {
	b.sessions.Get(userID).Sel.Dismiss()
	b.deleteMessage(chatID, msgID)
}

func (b *Bot) deleteMessage(chatID int64, msgID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, msgID)); err != nil {
		b.log.Debug("delete message", zap.Int64("chat_id", chatID), zap.Int("msg_id", msgID), zap.Error(err))
	}
}
