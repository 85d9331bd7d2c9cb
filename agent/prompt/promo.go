package prompt

import "fmt"

// Early Risers promotion templates.

func EarlyRisersNewCode(code, discount string) string {
	return fmt.Sprintf("I've generated a new Early Risers promo code for the customer:\nCode: %s\nDiscount: %s\nPlease share this with them in an enthusiastic way and mention it's valid until 10am PT today.", code, discount)
}

func EarlyRisersExistingCode(code, discount string, endHour int) string {
	return fmt.Sprintf("The customer already has an active Early Risers promo code from today.\nCode: %s\nDiscount: %s\nPlease inform them in a friendly way and remind them the code is valid until %d:00 AM PT today.", code, discount, endHour)
}

func EarlyRisersInvalidTime(currentTime, nextValidTime string) string {
	return fmt.Sprintf("The Early Risers promotion is only available between 8:00 - 10:00 AM PT.\nCurrent time: %s\nNext available time: %s\n\nPlease inform the customer about the valid hours and when they can try again. Keep it short and concise. DO NOT provide a promo code.", currentTime, nextValidTime)
}
