package cart

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rupiahSymbol = "Rp\u00a0"

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatCurrency renders amount as Indonesian rupiah without fraction digits,
// e.g. 25000 -> "Rp 25.000" (the space is U+00A0, as the id-ID locale prints it).
func FormatCurrency(amount int64) string {
	if amount < 0 {
		return "-" + rupiahSymbol + idPrinter.Sprintf("%d", uint64(-amount))
	}
	return rupiahSymbol + idPrinter.Sprintf("%d", amount)
}
