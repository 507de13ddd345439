package responsefile

import "strings"

// Tokenize splits response file text into arguments.
//
// Whitespace separates arguments except inside double quotes, which are
// removed. A switch split around its colon ("-a  :x.dll", "/a: x.dll") is
// rejoined into one argument. Lines starting with '#' are comments.
func Tokenize(text string) []string {
	var tokens []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, splitLine(line)...)
	}
	return rejoin(tokens)
}

func splitLine(line string) []string {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t' || r == '\r'):
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		out = append(out, cur.String())
	}
	return out
}

func rejoin(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		isSwitch := len(tok) > 1 && (tok[0] == '-' || tok[0] == '/')
		if isSwitch && i+1 < len(tokens) {
			switch {
			case strings.HasSuffix(tok, ":"):
				tok += tokens[i+1]
				i++
			case !strings.Contains(tok, ":") && strings.HasPrefix(tokens[i+1], ":"):
				tok += tokens[i+1]
				i++
				if strings.HasSuffix(tok, ":") && i+1 < len(tokens) {
					tok += tokens[i+1]
					i++
				}
			}
		}
		out = append(out, tok)
	}
	return out
}
