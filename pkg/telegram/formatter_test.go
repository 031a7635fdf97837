package telegram

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPriceAlert(t *testing.T) {
	triggeredAt := time.Date(2024, 5, 30, 15, 10, 0, 0, time.UTC)

	msg := FormatPriceAlert(Profit, "TATASTEEL.NS",
		decimal.RequireFromString("926.585"),
		decimal.RequireFromString("926.585"),
		decimal.RequireFromString("842.35"),
		triggeredAt)

	assert.Contains(t, msg, "📈 [TATASTEEL.NS] Profit Target Reached!")
	assert.Contains(t, msg, "₹926.59 (target: ₹926.59)")
	assert.Contains(t, msg, "Acquisition price: ₹842.35")
	assert.Contains(t, msg, "Thu, 30 May 2024")
}

func TestFormatPriceAlert_Loss(t *testing.T) {
	msg := FormatPriceAlert(Loss, "IDEA.NS",
		decimal.RequireFromString("9.4"),
		decimal.RequireFromString("9.5"),
		decimal.RequireFromString("10"),
		time.Now())

	assert.Contains(t, msg, "📉 [IDEA.NS] Stop Loss Breached!")
	assert.Contains(t, msg, "₹9.40 (target: ₹9.50)")
}
