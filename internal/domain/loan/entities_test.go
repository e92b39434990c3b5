package loan

import (
	"errors"
	"testing"

	"friendloan-backend/internal/domain/errs"
)

func TestTerms_Validate(t *testing.T) {
	ok := Terms{TotalAmount: 100, MaxInterestRate: 10, NbPayments: 6, PaymentType: PaymentYear}

	tests := []struct {
		name    string
		terms   Terms
		max     uint32
		wantErr error
		kind    error
	}{
		{"valid", ok, 36, nil, nil},
		{"ceiling zero", ok, 0, ErrCreationDisabled, errs.ErrInvalidState},
		{"zero amount", Terms{TotalAmount: 0, NbPayments: 6, PaymentType: PaymentYear}, 36, ErrInvalidAmount, errs.ErrInvalidArgument},
		{"zero payments", Terms{TotalAmount: 100, NbPayments: 0, PaymentType: PaymentYear}, 36, ErrInvalidNbPayments, errs.ErrInvalidArgument},
		{"payments above ceiling", Terms{TotalAmount: 100, NbPayments: 37, PaymentType: PaymentYear}, 36, ErrInvalidNbPayments, errs.ErrInvalidArgument},
		{"payments at ceiling", Terms{TotalAmount: 100, NbPayments: 36, PaymentType: PaymentWeek}, 36, nil, nil},
		{"unknown payment type", Terms{TotalAmount: 100, NbPayments: 6, PaymentType: 10}, 36, ErrInvalidPaymentType, errs.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.terms.Validate(tt.max)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.kind != nil && !errors.Is(err, tt.kind) {
				t.Fatalf("err %v is not of kind %v", err, tt.kind)
			}
		})
	}
}

func TestPaymentType_String(t *testing.T) {
	if PaymentYear.String() != "year" || PaymentType(2) != PaymentYear {
		t.Fatalf("YEAR must be 2 and print as year")
	}
	if got := PaymentType(9).String(); got != "unknown(9)" {
		t.Fatalf("String() = %q", got)
	}
}
