package common

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// FormatStars formats a star amount with thousand separators
func FormatStars(amount int64) string {
	str := strconv.FormatInt(amount, 10)
	sign := ""
	if amount < 0 {
		sign, str = "-", str[1:]
	}

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// Escape makes user supplied text safe inside an HTML message
func Escape(s string) string {
	return html.EscapeString(s)
}

// ReferralLink is the deep link that starts the bot with the referrer's id
func ReferralLink(botUsername string, telegramID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%d", botUsername, telegramID)
}
