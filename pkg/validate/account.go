package validate

// MinAccountNumberLen is the shortest account number worth sending to the
// provider's resolve endpoint; NUBAN numbers are exactly 10 digits.
const MinAccountNumberLen = 10

func IsAccountNumber(s string) bool {
	if len(s) < MinAccountNumberLen {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
