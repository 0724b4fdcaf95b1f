package utils

import "testing"

func TestNormalizeCardNumber(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"4111 1111 1111 1111", "4111111111111111"},
		{"4111-1111-1111-1111", "4111111111111111"},
		{"  4111111111111111  ", "4111111111111111"},
	}
	for _, tc := range tests {
		if got := NormalizeCardNumber(tc.in); got != tc.want {
			t.Errorf("NormalizeCardNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLuhnValid(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"4111111111111111", true},
		{"4012888888881881", true},
		{"5500005555555559", true},
		{"378282246310005", true},
		{"4111111111111112", false},
		{"1234567812345678", false},
		{"abcd", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := LuhnValid(tc.number); got != tc.want {
			t.Errorf("LuhnValid(%q) = %v, want %v", tc.number, got, tc.want)
		}
	}
}

func TestGenerateCardNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number, err := GenerateCardNumber()
		if err != nil {
			t.Fatalf("GenerateCardNumber: %v", err)
		}
		if len(number) != 16 {
			t.Fatalf("length = %d, want 16", len(number))
		}
		if number[:4] != "4111" {
			t.Fatalf("prefix = %q, want 4111", number[:4])
		}
		if !LuhnValid(number) {
			t.Fatalf("generated number %q fails the Luhn check", number)
		}
		seen[number] = true
	}
	if len(seen) < 2 {
		t.Error("generator produced no variety across 50 draws")
	}
}

func TestDetectCardType(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "Visa"},
		{"4222222222222", "Visa"},
		{"5500005555555559", "MasterCard"},
		{"2221000000000009", "MasterCard"},
		{"378282246310005", "American Express"},
		{"341111111111111", "American Express"},
		{"6011000990139424", "Discover"},
		{"6511000990139424", "Discover"},
		{"9999999999999999", "Unknown"},
		{"", "Unknown"},
	}
	for _, tc := range tests {
		if got := DetectCardType(tc.number); got != tc.want {
			t.Errorf("DetectCardType(%q) = %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestHolderNameValidation(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"John Smith", true},
		{"Jo", false},
		{"John Smith III 3", false},
		{"", false},
		{"Anna Maria Von Habsburg Lothringen And Company Ltd X", false}, // over 50 chars
	}
	for _, tc := range tests {
		if got := IsValidHolderName(tc.name); got != tc.want {
			t.Errorf("IsValidHolderName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
