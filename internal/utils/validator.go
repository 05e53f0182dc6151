package utils

// ValidPassword is the signup/edit-profile password predicate: at least 8
// characters, only letters and digits, with at least one of each.
func ValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var letter, digit bool
	for i := 0; i < len(pw); i++ {
		c := pw[i]
		switch {
		case c >= '0' && c <= '9':
			digit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			letter = true
		default:
			return false
		}
	}
	return letter && digit
}
