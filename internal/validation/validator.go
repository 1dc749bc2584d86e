package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
)

// minDeliveryDays is how far out the earliest delivery date lies.
const minDeliveryDays = 3

// Delivery dates are compared as calendar days in the storefront's market
// timezone, not in the server's zone.
var deliveryZone = func() *time.Location {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		return time.UTC
	}
	return loc
}()

var cardLast4Pattern = regexp.MustCompile(`^\d{4}$`)

// New returns a configured validator for OrderSubmission structural checks.
func New() *validatorv10.Validate {
	return validatorv10.New()
}

// CheckSubmission validates a checkout submission against structural and
// business rules. Rules run in a fixed precedence so the same broken payload
// always produces the same message; the first failure wins and is returned
// as a single human-readable error.
func CheckSubmission(v *validatorv10.Validate, sub *OrderSubmission, now time.Time) error {
	if sub == nil || len(sub.Items) == 0 {
		return errors.New("order payload is incomplete: no items")
	}
	if sub.Customer == nil || sub.Delivery == nil || sub.Payment == nil || sub.Total <= 0 {
		return errors.New("order payload is incomplete")
	}
	if err := v.Struct(sub); err != nil {
		return errors.New("order payload is invalid")
	}

	date, err := time.ParseInLocation("2006-01-02", sub.Delivery.Date, deliveryZone)
	if err != nil {
		return errors.New("delivery date is invalid")
	}
	if date.Before(minDeliveryDate(now)) {
		return errors.New("delivery date must be at least 3 days from today")
	}

	if n := digitCount(sub.Customer.Phone); n < 10 || n > 15 {
		return errors.New("phone number must contain 10 to 15 digits")
	}

	address := strings.TrimSpace(sub.Delivery.Address)
	if len(address) < 12 || !containsDigit(address) {
		return errors.New("delivery address must include street and number details")
	}

	switch sub.Payment.Method {
	case MethodTransfer:
		if len(strings.TrimSpace(sub.Payment.Details.TransferReference)) <= 3 {
			return errors.New("transfer reference is required")
		}
	case MethodCard:
		holder := strings.TrimSpace(sub.Payment.Details.CardHolder)
		last4 := strings.TrimSpace(sub.Payment.Details.CardLast4)
		if len(holder) <= 2 || !cardLast4Pattern.MatchString(last4) {
			return errors.New("card details are incomplete")
		}
	case MethodCash:
		// change-for note is optional
	}

	return nil
}

// minDeliveryDate is midnight of today+minDeliveryDays in the delivery zone.
func minDeliveryDate(now time.Time) time.Time {
	y, m, d := now.In(deliveryZone).Date()
	return time.Date(y, m, d+minDeliveryDays, 0, 0, 0, 0, deliveryZone)
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func containsDigit(s string) bool {
	return digitCount(s) > 0
}
