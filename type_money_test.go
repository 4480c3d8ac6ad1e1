package stocks

import (
	"testing"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		input    string
		currency string
		want     Money
		wantErr  bool
	}{
		{input: "1.57", currency: "USD", want: USD(1.57)},
		{input: "$1.57", currency: "USD", want: USD(1.57)},
		{input: " $2.15 ", currency: "USD", want: USD(2.15)},
		{input: "-$0.25", currency: "USD", want: USD(-0.25)},
		{input: "$-0.25", currency: "USD", want: USD(-0.25)},
		{input: "$1,000.50", currency: "USD", want: USD(1000.50)},
		{input: "€3", currency: "EUR", want: EUR(3)},
		{input: "0.001", currency: "USD", want: USD(0.001)},
		{input: "abc", currency: "USD", wantErr: true},
		{input: "", currency: "USD", wantErr: true},
		{input: "$", currency: "USD", wantErr: true},
		{input: "€3", currency: "USD", wantErr: true},
		{input: "--1.00", currency: "USD", wantErr: true},
		{input: "-$-1.00", currency: "USD", wantErr: true},
		{input: "$+1.00", currency: "USD", wantErr: true},
		{input: "-+1.00", currency: "USD", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMoney(tc.input, tc.currency)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMoney(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseMoney(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{m: USD(1.57), want: "$1.57"},
		{m: USD(116), want: "$116.00"},
		{m: USD(-20), want: "-$20.00"},
		{m: USD(1.575), want: "$1.58"},
		{m: USD(1234.5), want: "$1,234.50"},
		{m: M(3.5, ""), want: "3.50"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	// a float would drift after a thousand additions of a cent.
	sum := USD(0)
	for range 1000 {
		sum = sum.Add(USD(0.01))
	}
	if !sum.Equal(USD(10)) {
		t.Errorf("sum of 1000 cents = %v, want $10.00", sum)
	}

	profit := USD(2.15).Sub(USD(1.57)).Mul(200)
	if !profit.Equal(USD(116)) {
		t.Errorf("(2.15 - 1.57) * 200 = %v, want $116.00", profit)
	}

	if got := USD(3).Add(M(2, "")); got.Currency() != "USD" {
		t.Errorf("Add with a currency-less amount has currency %q, want USD", got.Currency())
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got := USD(0).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want %q", got, "-")
	}
	if got := USD(1).SignedString(); got != "+$1.00" {
		t.Errorf("SignedString(1) = %q, want %q", got, "+$1.00")
	}
	if got := USD(-1).SignedString(); got != "-$1.00" {
		t.Errorf("SignedString(-1) = %q, want %q", got, "-$1.00")
	}
}
