package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"golang-stock-watchlist/pkg/utils"
)

// AlertType represents the type of price alert.
type AlertType string

const (
	Profit AlertType = "PROFIT"
	Loss   AlertType = "LOSS"
)

// FormatPriceAlert formats a threshold-crossing alert into a Markdown string
// for Telegram.
func FormatPriceAlert(alertType AlertType, symbol string, observedPrice, targetPrice, referencePrice decimal.Decimal, triggeredAt time.Time) string {
	var builder strings.Builder

	var title, emoji string
	switch alertType {
	case Profit:
		title = "Profit Target Reached!"
		emoji = "📈"
	case Loss:
		title = "Stop Loss Breached!"
		emoji = "📉"
	default:
		title = "Price Alert"
		emoji = "🔔"
	}

	builder.WriteString(fmt.Sprintf("%s [%s] %s\n", emoji, symbol, title))
	builder.WriteString(fmt.Sprintf("💰 Price hit: ₹%s (target: ₹%s)\n", observedPrice.StringFixed(2), targetPrice.StringFixed(2)))
	builder.WriteString(fmt.Sprintf("🧾 Acquisition price: ₹%s\n", referencePrice.StringFixed(2)))
	builder.WriteString(fmt.Sprintf("%s\n", utils.PrettyDate(triggeredAt)))
	return builder.String()
}
