package enums

import "fmt"

// PaymentMethod describes how a customer intends to pay at delivery.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodYape PaymentMethod = "yape"
	PaymentMethodPlin PaymentMethod = "plin"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodYape,
	PaymentMethodPlin,
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCash: "Efectivo",
	PaymentMethodCard: "Tarjeta",
	PaymentMethodYape: "Yape",
	PaymentMethodPlin: "Plin",
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// Label returns the display label for the payment method.
func (p PaymentMethod) Label() string {
	return paymentMethodLabels[p]
}

// PaymentMethods returns every valid payment method.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(validPaymentMethods))
	copy(out, validPaymentMethods)
	return out
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
