package types

import (
	"testing"
)

func TestMulMoney_RoundsToScale(t *testing.T) {
	tests := []struct {
		name    string
		perUnit string
		qty     string
		want    string
	}{
		{"whole numbers", "50", "10", "500"},
		{"fractional grams", "50", "10.5", "525"},
		{"rounding half up", "3.333", "2", "6.67"},
		{"tiny per-gram fee", "0.01", "0.4", "0"},
		{"zero per-gram", "0", "12.345", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MulMoney(MustMoney(tt.perUnit), MustMoney(tt.qty))
			if !got.Equal(MustMoney(tt.want)) {
				t.Errorf("MulMoney(%s, %s) = %s, want %s", tt.perUnit, tt.qty, got, tt.want)
			}
		})
	}
}

func TestMinMoney(t *testing.T) {
	a := MustMoney("300")
	b := MustMoney("1000")

	if got := MinMoney(a, b); !got.Equal(a) {
		t.Errorf("MinMoney(300, 1000) = %s, want 300", got)
	}
	if got := MinMoney(b, a); !got.Equal(a) {
		t.Errorf("MinMoney(1000, 300) = %s, want 300", got)
	}
	if got := MinMoney(a, a); !got.Equal(a) {
		t.Errorf("MinMoney(300, 300) = %s, want 300", got)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		part  string
		whole string
		want  string
	}{
		{"partial payment", "200", "500", "40"},
		{"fully paid", "500", "500", "100"},
		{"repeating fraction", "1", "3", "33.33"},
		{"zero whole", "200", "0", "0"},
		{"negative whole", "200", "-1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(MustMoney(tt.part), MustMoney(tt.whole))
			if !got.Equal(MustMoney(tt.want)) {
				t.Errorf("Percentage(%s, %s) = %s, want %s", tt.part, tt.whole, got, tt.want)
			}
		})
	}
}

func TestNewMoneyFromString_RejectsGarbage(t *testing.T) {
	if _, err := NewMoneyFromString("12.3.4"); err == nil {
		t.Error("expected error for malformed decimal")
	}
	if _, err := NewMoneyFromString(""); err == nil {
		t.Error("expected error for empty string")
	}
}
