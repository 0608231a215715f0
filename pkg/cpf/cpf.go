// Package cpf validates Brazilian CPF numbers (the national taxpayer ID)
// using the standard mod-11 check digits.
package cpf

// IsValid reports whether digits is a well-formed CPF. It expects digits-only
// input; anything containing a non-digit, the wrong length, or the known
// all-same-digit sequences is rejected.
func IsValid(digits string) bool {
	if len(digits) != 11 {
		return false
	}

	same := true
	for i := 0; i < 11; i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
		if digits[i] != digits[0] {
			same = false
		}
	}
	// 000.000.000-00 through 999.999.999-99 pass the checksum but are not
	// issuable CPFs
	if same {
		return false
	}

	if checkDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits, 10) == int(digits[10]-'0')
}

// checkDigit computes the verification digit over the first n positions,
// weighted n+1 down to 2.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
