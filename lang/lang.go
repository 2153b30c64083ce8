// Package lang holds the bot's user-facing texts.
package lang

import "fmt"

const (
	Id = "id"
	En = "en"
)

var texts = map[string]map[string]string{
	Id: {
		"choose_lang":      "Pilih bahasa / Choose language",
		"language_changed": "Bahasa diganti ke Bahasa Indonesia.",
		"welcome":          "Selamat datang! Pilih restoran:",
		"no_tenants":       "Belum ada restoran yang tersedia.",
		"tenant_not_found": "Restoran tidak ditemukan.",
		"item_not_found":   "Menu tidak ditemukan.",
		"menu_header":      "🍽 *%s*\n\nPilih menu:",
		"menu_empty":       "Menu belum tersedia.",
		"search_usage":     "Gunakan: /search NAMA MENU",
		"search_empty":     "Tidak ada menu yang cocok dengan \"%s\".",
		"add":              "Tambah",
		"add_to_cart":      "Tambah Pembelian",
		"close":            "Tutup",
		"back":             "⬅️ Kembali",
		"cart_badge":       "%d item | Diantar dari %s",
		"cart_badge_plain": "%d item",
		"view_cart":        "🛒 Lihat keranjang",
		"cart_label":       "Keranjang",
		"cart_empty":       "Keranjang kamu masih kosong.",
		"clear_cart":       "🗑 Kosongkan",
		"cart_cleared":     "Keranjang dikosongkan.",
		"total":            "Total",
		"product_added":    "✅ Ditambahkan ke keranjang.",
		"checkout":         "Checkout",
		"order_summary":    "🧾 *Ringkasan pesanan*",
		"choose_payment":   "Pilih metode pembayaran:",
		"payment_selected": "Metode pembayaran: %s",
		"pay_now":          "💳 Bayar sekarang",
		"referral_saved":   "Kode referral disimpan: %s",
		"referral_usage":   "Gunakan: /referral KODE",
		"referral_label":   "Referral: %s",
		"unknown_payment":  "Metode pembayaran tidak dikenal.",
		"order_failed":     "Pesanan gagal dibuat. Coba lagi.",
		"invoice_title":    "Pesanan %s",
		"invoice_desc":     "%d item, total %s",
		"payment_failed":   "Pembayaran tidak dapat diproses.",
		"payment_success":  "✅ *Pembayaran berhasil!*\n\nKami sedang menyiapkan pesananmu dan akan segera diantar ke mejamu. Terima kasih!",
		"order_ref":        "No. pesanan: %s",
		"back_home":        "Kembali ke beranda",
		"my_orders_empty":  "Belum ada pesanan.",
		"my_orders_header": "📦 Pesanan kamu:\n\n",
		"status_pending":   "menunggu pembayaran",
		"status_paid":      "dibayar",
		"something_wrong":  "Terjadi kesalahan. Coba lagi nanti.",
	},
	En: {
		"choose_lang":      "Pilih bahasa / Choose language",
		"language_changed": "Language switched to English.",
		"welcome":          "Welcome! Choose a restaurant:",
		"no_tenants":       "No restaurants available yet.",
		"tenant_not_found": "Restaurant not found.",
		"item_not_found":   "Menu item not found.",
		"menu_header":      "🍽 *%s*\n\nChoose from the menu:",
		"menu_empty":       "The menu is empty.",
		"search_usage":     "Usage: /search DISH NAME",
		"search_empty":     "No menu item matches \"%s\".",
		"add":              "Add",
		"add_to_cart":      "Add to cart",
		"close":            "Close",
		"back":             "⬅️ Back",
		"cart_badge":       "%d item | Delivered from %s",
		"cart_badge_plain": "%d item",
		"view_cart":        "🛒 View cart",
		"cart_label":       "Cart",
		"cart_empty":       "Your cart is empty.",
		"clear_cart":       "🗑 Clear",
		"cart_cleared":     "Cart cleared.",
		"total":            "Total",
		"product_added":    "✅ Added to cart.",
		"checkout":         "Checkout",
		"order_summary":    "🧾 *Order summary*",
		"choose_payment":   "Choose a payment method:",
		"payment_selected": "Payment method: %s",
		"pay_now":          "💳 Pay now",
		"referral_saved":   "Referral code saved: %s",
		"referral_usage":   "Usage: /referral CODE",
		"referral_label":   "Referral: %s",
		"unknown_payment":  "Unknown payment method.",
		"order_failed":     "Could not place the order. Please try again.",
		"invoice_title":    "Order %s",
		"invoice_desc":     "%d item, total %s",
		"payment_failed":   "Payment could not be processed.",
		"payment_success":  "✅ *Payment successful!*\n\nWe are preparing your order and it will be delivered to your table shortly. Thank you!",
		"order_ref":        "Order no.: %s",
		"back_home":        "Back to home",
		"my_orders_empty":  "No orders yet.",
		"my_orders_header": "📦 Your orders:\n\n",
		"status_pending":   "awaiting payment",
		"status_paid":      "paid",
		"something_wrong":  "Something went wrong. Please try again later.",
	},
}

// Valid reports whether code is a supported language.
func Valid(code string) bool {
	_, ok := texts[code]
	return ok
}

// T returns the text for key in langCode, formatted with args when given.
// Unknown languages fall back to Indonesian; unknown keys return the key itself.
func T(langCode, key string, args ...interface{}) string {
	m, ok := texts[langCode]
	if !ok {
		m = texts[Id]
	}
	s, ok := m[key]
	if !ok {
		s, ok = texts[Id][key]
		if !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}
