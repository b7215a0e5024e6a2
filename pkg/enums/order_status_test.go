package enums

import "testing"

func TestOrderStatusDisplayMappingIsExhaustive(t *testing.T) {
	seenLabels := map[string]OrderStatus{}
	seenColors := map[string]OrderStatus{}
	for _, status := range OrderStatuses() {
		display := status.Display()
		if display.Label == "" {
			t.Fatalf("status %s has no label", status)
		}
		if display.Color == "" {
			t.Fatalf("status %s has no colour", status)
		}
		if prev, dup := seenLabels[display.Label]; dup {
			t.Fatalf("label %q reused by %s and %s", display.Label, prev, status)
		}
		if prev, dup := seenColors[display.Color]; dup {
			t.Fatalf("colour %q reused by %s and %s", display.Color, prev, status)
		}
		seenLabels[display.Label] = status
		seenColors[display.Color] = status
	}
	if len(seenLabels) != 6 {
		t.Fatalf("expected 6 statuses, got %d", len(seenLabels))
	}
}

func TestParseOrderStatusRoundTrip(t *testing.T) {
	for _, status := range OrderStatuses() {
		parsed, err := ParseOrderStatus(status.String())
		if err != nil {
			t.Fatalf("parse %s: %v", status, err)
		}
		if parsed != status {
			t.Fatalf("expected %s got %s", status, parsed)
		}
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestOrderStatusTerminality(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled must be terminal")
	}
	if OrderStatusPending.IsTerminal() {
		t.Fatal("pending must not be terminal")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, method := range PaymentMethods() {
		parsed, err := ParsePaymentMethod(method.String())
		if err != nil {
			t.Fatalf("parse %s: %v", method, err)
		}
		if parsed != method {
			t.Fatalf("expected %s got %s", method, parsed)
		}
		if method.Label() == "" {
			t.Fatalf("method %s has no label", method)
		}
	}
	if _, err := ParsePaymentMethod("bitcoin"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}
