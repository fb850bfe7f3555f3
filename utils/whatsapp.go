package utils

import (
	"fmt"
	"net/url"
)

// BuildWhatsAppURL собирает ссылку wa.me для номера и необязательного текста
func BuildWhatsAppURL(phoneNumber, message string) string {
	if message == "" {
		return fmt.Sprintf("https://wa.me/%s", phoneNumber)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", phoneNumber, url.QueryEscape(message))
}
