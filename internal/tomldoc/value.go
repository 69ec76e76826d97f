package tomldoc

import (
	"strconv"
	"strings"
)

// decodeString interprets the source text of a TOML value as a string.
// Both basic ("...") and literal ('...') strings are supported.
func decodeString(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return "", false
	}
	switch raw[0] {
	case '"':
		if raw[len(raw)-1] != '"' {
			return "", false
		}
		return unescapeBasic(raw[1 : len(raw)-1])
	case '\'':
		if raw[len(raw)-1] != '\'' {
			return "", false
		}
		return raw[1 : len(raw)-1], true
	}
	return "", false
}

func unescapeBasic(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u', 'U':
			size := 4
			if s[i] == 'U' {
				size = 8
			}
			if i+size >= len(s) {
				return "", false
			}
			code, err := strconv.ParseUint(s[i+1:i+1+size], 16, 32)
			if err != nil {
				return "", false
			}
			b.WriteRune(rune(code))
			i += size
		default:
			return "", false
		}
	}
	return b.String(), true
}

// encodeString renders a string as a TOML basic string.
func encodeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func decodeBool(raw string) (bool, bool) {
	switch strings.TrimSpace(raw) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func decodeInt(raw string) (int64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "")
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// decodeStringList interprets the source text of a TOML array whose
// elements are all strings. Anything else fails the decode.
func decodeStringList(raw string) ([]string, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return nil, false
	}
	body := raw[1 : len(raw)-1]
	items := []string{}
	i := 0
	for i < len(body) {
		switch body[i] {
		case ' ', '\t', '\n', '\r', ',':
			i++
		case '#':
			// comment runs to end of line
			for i < len(body) && body[i] != '\n' {
				i++
			}
		case '"', '\'':
			quote := body[i]
			j := i + 1
			for j < len(body) {
				if body[j] == '\\' && quote == '"' {
					j += 2
					continue
				}
				if body[j] == quote {
					break
				}
				j++
			}
			if j >= len(body) {
				return nil, false
			}
			text, ok := decodeString(body[i : j+1])
			if !ok {
				return nil, false
			}
			items = append(items, text)
			i = j + 1
		default:
			return nil, false
		}
	}
	return items, true
}

// encodeStringList renders an inline TOML array of strings.
func encodeStringList(items []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = encodeString(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
