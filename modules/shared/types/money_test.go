package types

import "testing"

func TestNewMoney(t *testing.T) {
	if _, err := NewMoney(100, ""); err == nil {
		t.Error("expected error for empty currency")
	}
	if _, err := NewMoney(100, "RUPEES"); err == nil {
		t.Error("expected error for non-ISO currency")
	}
	m, err := NewMoney(-50, "INR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsNegative() {
		t.Error("expected negative amount")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustNewMoney(1299, "INR")
	b := MustNewMoney(500, "INR")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Amount() != 1799 {
		t.Errorf("Add = %d, want 1799", sum.Amount())
	}

	diff, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff.Amount() != 799 {
		t.Errorf("Subtract = %d, want 799", diff.Amount())
	}

	if got := a.Multiply(3).Amount(); got != 3897 {
		t.Errorf("Multiply = %d, want 3897", got)
	}

	usd := MustNewMoney(100, "USD")
	if _, err := a.Add(usd); err == nil {
		t.Error("expected currency mismatch error on Add")
	}
	if _, err := a.Subtract(usd); err == nil {
		t.Error("expected currency mismatch error on Subtract")
	}
}

func TestMoneyApplyBasisPoints(t *testing.T) {
	tests := []struct {
		amount int64
		bp     int64
		want   int64
	}{
		{2598, 1000, 260}, // 259.8 rounds up
		{1000, 1000, 100},
		{1004, 1000, 100}, // 100.4 rounds down
		{1005, 1000, 101}, // 100.5 rounds up (half-up)
		{0, 1000, 0},
		{2598, 0, 0},
	}
	for _, tt := range tests {
		m := MustNewMoney(tt.amount, "INR")
		if got := m.ApplyBasisPoints(tt.bp).Amount(); got != tt.want {
			t.Errorf("ApplyBasisPoints(%d, %d) = %d, want %d", tt.amount, tt.bp, got, tt.want)
		}
	}
}

func TestMoneyEquals(t *testing.T) {
	a := MustNewMoney(100, "INR")
	if !a.Equals(MustNewMoney(100, "INR")) {
		t.Error("expected equal")
	}
	if a.Equals(MustNewMoney(100, "USD")) {
		t.Error("expected not equal across currencies")
	}
	if a.Equals(MustNewMoney(101, "INR")) {
		t.Error("expected not equal across amounts")
	}
}
