package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	holderNamePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	cardDigitsPattern = regexp.MustCompile(`^\d{13,19}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// NormalizeCardNumber strips spaces and dashes.
func NormalizeCardNumber(raw string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(strings.TrimSpace(raw))
}

// IsValidHolderName checks length 3-50 and letters/spaces only.
func IsValidHolderName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 50 {
		return false
	}
	return holderNamePattern.MatchString(name)
}

// IsValidCardDigits checks a normalized number is 13-19 digits.
func IsValidCardDigits(number string) bool {
	return cardDigitsPattern.MatchString(number)
}

// IsValidCVV checks 3 or 4 digits.
func IsValidCVV(cvv string) bool {
	return cvvPattern.MatchString(strings.TrimSpace(cvv))
}

// LuhnValid runs the Luhn checksum over a normalized card number.
func LuhnValid(number string) bool {
	if !cardDigitsPattern.MatchString(number) {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// GenerateCardNumber produces a 16-digit Visa-prefixed number that passes the
// Luhn check. Used when seeding a guest's default wallet card.
func GenerateCardNumber() (string, error) {
	var sb strings.Builder
	sb.WriteString("4111")
	for sb.Len() < 15 {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate card number: %w", err)
		}
		sb.WriteString(n.String())
	}
	base := sb.String()

	sum := 0
	double := true
	for i := len(base) - 1; i >= 0; i-- {
		digit := int(base[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	check := (10 - sum%10) % 10
	return base + strconv.Itoa(check), nil
}

// DetectCardType classifies by IIN prefix for display only.
func DetectCardType(number string) string {
	switch {
	case number == "":
		return "Unknown"
	case strings.HasPrefix(number, "4") && (len(number) == 13 || len(number) == 16 || len(number) == 19):
		return "Visa"
	case len(number) == 15 && (strings.HasPrefix(number, "34") || strings.HasPrefix(number, "37")):
		return "American Express"
	}
	if len(number) == 16 {
		if firstTwo, err := strconv.Atoi(number[:2]); err == nil && firstTwo >= 51 && firstTwo <= 55 {
			return "MasterCard"
		}
		if firstFour, err := strconv.Atoi(number[:4]); err == nil && firstFour >= 2221 && firstFour <= 2720 {
			return "MasterCard"
		}
		if strings.HasPrefix(number, "6011") || strings.HasPrefix(number, "65") {
			return "Discover"
		}
		if firstSix, err := strconv.Atoi(number[:6]); err == nil && firstSix >= 622126 && firstSix <= 622925 {
			return "Discover"
		}
		if firstThree, err := strconv.Atoi(number[:3]); err == nil && firstThree >= 644 && firstThree <= 649 {
			return "Discover"
		}
	}
	return "Unknown"
}
