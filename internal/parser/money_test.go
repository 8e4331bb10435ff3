package parser

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"25.99", 25.99, false},
		{"1,234.56", 1234.56, false},
		{"$25.99", 25.99, false},
		{"-25.99", -25.99, false},
		{"-$842.15", -842.15, false},
		{"$-45.00", -45.00, false},
		{"(45.00)", -45.00, false},
		{"58.86-", -58.86, false},
		{"$1,234,567.89", 1234567.89, false},
		{"0.00", 0.00, false},
		{" 25.99 ", 25.99, false},
		{"", 0, true},
		{"-", 0, true},
		{"abc", 0, true},
		{"12.3.4", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %f", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestFindMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []float64
	}{
		{"amount and balance", "Loan interest NO.78783249 001 221.33 -58.86", []float64{221.33, -58.86}},
		{"reference numbers ignored", "CHQ#00123 456789", nil},
		{"dollar signs", "PAYMENT $500.00 balance $1,250.75", []float64{500.00, 1250.75}},
		{"nothing", "no numbers here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findMoney(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsMeaningfulDescription(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"TIM HORTONS #4431", true},
		{"e-Transfer received from John Smith", true},
		{"", false},
		{"   ", false},
		{"123 456", false},
		{"00123.45", false},
		{"221.33 -58.86", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isMeaningfulDescription(tt.input); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
