package payments

import "testing"

func TestAmountInCentsTruncates(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{price: 12, want: 1200},
		{price: 10.5, want: 1050},
		{price: 10.999, want: 1099},
		{price: 0, want: 0},
	}

	for _, tt := range tests {
		if got := amountInCents(tt.price); got != tt.want {
			t.Fatalf("amountInCents(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}
