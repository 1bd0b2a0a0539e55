package services

import (
	"errors"
	"testing"

	"github.com/juntos-app/juntos-api/utils"
)

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     int64
		paid          int64
		payment       int64
		wantRemaining int64
		wantSettles   bool
		wantErr       error
	}{
		{"first partial payment", 10000, 0, 4000, 6000, false, nil},
		{"second partial payment", 10000, 4000, 4000, 2000, false, nil},
		{"exact final payment settles", 10000, 8000, 2000, 0, true, nil},
		{"full payment in one go", 10000, 0, 10000, 0, true, nil},
		{"overpayment rejected", 10000, 8000, 2001, 0, false, ErrOverpayment},
		{"payment against settled loan rejected", 10000, 10000, 1, 0, false, ErrOverpayment},
		{"single cent", 10000, 0, 1, 9999, false, nil},
		{"zero payment rejected", 10000, 0, 0, 0, false, utils.ErrInvalidAmount},
		{"negative payment rejected", 10000, 0, -500, 0, false, utils.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, settles, err := applyPayment(tt.principal, tt.paid, tt.payment)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("applyPayment() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyPayment() unexpected error: %v", err)
			}
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", remaining, tt.wantRemaining)
			}
			if settles != tt.wantSettles {
				t.Errorf("settles = %v, want %v", settles, tt.wantSettles)
			}
		})
	}
}

// The worked repayment sequence: principal 100, payments of 40 and 40
// leave 20 unsettled, a payment of 20 settles, anything further fails.
func TestApplyPaymentSequence(t *testing.T) {
	const principal = 10000 // 100.00
	var paid int64

	remaining, settles, err := applyPayment(principal, paid, 4000)
	if err != nil || remaining != 6000 || settles {
		t.Fatalf("after 40: remaining=%d settles=%v err=%v", remaining, settles, err)
	}
	paid += 4000

	remaining, settles, err = applyPayment(principal, paid, 4000)
	if err != nil || remaining != 2000 || settles {
		t.Fatalf("after 80: remaining=%d settles=%v err=%v", remaining, settles, err)
	}
	paid += 4000

	remaining, settles, err = applyPayment(principal, paid, 2000)
	if err != nil || remaining != 0 || !settles {
		t.Fatalf("after 100: remaining=%d settles=%v err=%v", remaining, settles, err)
	}
	paid += 2000

	if _, _, err := applyPayment(principal, paid, 1); !errors.Is(err, ErrOverpayment) {
		t.Fatalf("payment past settlement: err=%v, want ErrOverpayment", err)
	}
}

// Amounts that are awkward in binary floating point must stay exact
// in cents. 0.1 + 0.2 style drift would under- or over-settle loans.
func TestApplyPaymentDecimalExactness(t *testing.T) {
	principal, err := utils.ParseAmountToCents("0.30")
	if err != nil {
		t.Fatal(err)
	}

	p1, _ := utils.ParseAmountToCents("0.10")
	p2, _ := utils.ParseAmountToCents("0.20")

	remaining, settles, err := applyPayment(principal, 0, p1)
	if err != nil {
		t.Fatal(err)
	}
	remaining, settles, err = applyPayment(principal, p1, p2)
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 0 || !settles {
		t.Errorf("0.10 + 0.20 against 0.30: remaining=%d settles=%v, want 0/true", remaining, settles)
	}
}
