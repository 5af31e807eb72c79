package beet

import "strings"

// EditorCommand renders an EDITOR value that re-invokes executable with args.
// beets splits EDITOR with shell rules, so each word is quoted when needed.
func EditorCommand(executable string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, shellQuote(executable))
	for _, arg := range args {
		words = append(words, shellQuote(arg))
	}
	return strings.Join(words, " ")
}

func shellQuote(word string) string {
	if word == "" {
		return "''"
	}
	if strings.IndexFunc(word, unsafeShellRune) < 0 {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'"'"'`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	default:
		return !strings.ContainsRune("-_./=:@%+,", r)
	}
}
