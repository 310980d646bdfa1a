package common

import (
	"fmt"
	"strings"
)

const (
	NEARDecimals = 24 // 1 NEAR = 10^24 yoctoNEAR
)

// FormatNearAmount converts yoctoNEAR to a NEAR display string without float precision loss.
// Example: FormatNearAmount("1500000000000000000000000000") = "1,500"
func FormatNearAmount(yocto string) (string, error) {
	yocto, err := normalizeDigits(yocto)
	if err != nil {
		return "", err
	}
	return trimTrailingZeros(formatWithDecimals(yocto, NEARDecimals)), nil
}

// ParseNearAmount converts a NEAR string to yoctoNEAR without float precision loss.
// Example: ParseNearAmount("1.5") = "1500000000000000000000000"
func ParseNearAmount(near string) (string, error) {
	near = strings.ReplaceAll(strings.TrimSpace(near), ",", "")
	return parseWithDecimals(near, NEARDecimals)
}

// formatWithDecimals inserts a decimal point into a digit string and groups the whole part
// Example: formatWithDecimals("24981836", 6) = "24.981836"
func formatWithDecimals(digits string, decimals int) string {
	// Pad with leading zeros if needed
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	pos := len(digits) - decimals
	return formatWithCommas(digits[:pos]) + "." + digits[pos:]
}

// parseWithDecimals converts decimal string to integer digit string by removing decimal point
// Example: parseWithDecimals("0.024981836", 9) = "24981836"
func parseWithDecimals(s string, decimals int) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	if whole == "" {
		whole = "0"
	}

	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if len(frac) > decimals {
		return "", fmt.Errorf("cannot parse '%s', more than %d decimals", s, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	return normalizeDigits(whole + frac)
}

// normalizeDigits checks that s is a non-negative integer and strips leading zeros
func normalizeDigits(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty string")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid amount '%s'", s)
		}
	}

	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0", nil
	}
	return s, nil
}

func formatWithCommas(whole string) string {
	if len(whole) <= 3 {
		return whole
	}

	var b strings.Builder
	head := len(whole) % 3
	if head > 0 {
		b.WriteString(whole[:head])
	}
	for i := head; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}

// trimTrailingZeros strips zeros after the decimal point, and the point itself if nothing is left
func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
