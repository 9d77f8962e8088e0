package scriptstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var bareKey = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// decodeLiteral decodes a JavaScript array/object literal into v. Bare and
// quoted keys, single, double and backtick strings, comments and trailing
// commas are accepted.
func decodeLiteral(literal []byte, v any) error {
	data, err := literalToJSON(literal)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode literal: %w", err)
	}
	return nil
}

// encodeLiteral renders v as a four space indented literal with bare
// identifier keys and single quoted strings.
func encodeLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode literal: %w", err)
	}
	return jsonToLiteral(bytes.TrimRight(buf.Bytes(), "\n"))
}

func literalToJSON(src []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src))

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isSpace(c):
			out.WriteByte(c)
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			i = skipLineComment(src, i) + 1
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end, err := skipBlockComment(src, i)
			if err != nil {
				return nil, err
			}
			i = end + 1
		case c == '\'' || c == '"' || c == '`':
			value, next, err := readString(src, i)
			if err != nil {
				return nil, err
			}
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			out.Write(encoded)
			i = next
		case c == ',':
			if next := skipTrivia(src, i+1); next < len(src) && (src[next] == ']' || src[next] == '}') {
				i++
				continue
			}
			out.WriteByte(c)
			i++
		case isIdentStart(c):
			end := i
			for end < len(src) && isIdentPart(src[end]) {
				end++
			}
			word := string(src[i:end])
			if next := skipTrivia(src, end); next < len(src) && src[next] == ':' {
				out.WriteString(strconv.Quote(word))
			} else {
				switch word {
				case "true", "false", "null":
					out.WriteString(word)
				case "undefined":
					out.WriteString("null")
				default:
					return nil, fmt.Errorf("unexpected identifier %q at offset %d", word, i)
				}
			}
			i = end
		case c == '-' || c == '+' || c == '.' || isDigit(c):
			end := i
			for end < len(src) && isNumberPart(src[end]) {
				end++
			}
			out.Write(bytes.TrimPrefix(src[i:end], []byte("+")))
			i = end
		case strings.IndexByte("{}[]:", c) >= 0:
			out.WriteByte(c)
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return out.Bytes(), nil
}

// readString decodes the string literal starting at start and returns its
// value and the offset just past the closing quote.
func readString(src []byte, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder

	for i := start + 1; i < len(src); {
		c := src[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\n' && quote != '`':
			return "", 0, fmt.Errorf("unterminated string at offset %d", start)
		case c == '$' && quote == '`' && i+1 < len(src) && src[i+1] == '{':
			return "", 0, fmt.Errorf("template interpolation at offset %d is not supported", i)
		case c != '\\':
			b.WriteByte(c)
			i++
			continue
		}

		if i+1 >= len(src) {
			break
		}
		esc := src[i+1]
		i += 2
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
		case '\r':
			if i < len(src) && src[i] == '\n' {
				i++
			}
		case 'x':
			r, err := parseHex(src, i, 2)
			if err != nil {
				return "", 0, err
			}
			b.WriteRune(r)
			i += 2
		case 'u':
			r, next, err := readUnicodeEscape(src, i)
			if err != nil {
				return "", 0, err
			}
			b.WriteRune(r)
			i = next
		default:
			b.WriteByte(esc)
		}
	}
	return "", 0, fmt.Errorf("unterminated string at offset %d", start)
}

// readUnicodeEscape reads the digits of a \u escape starting at i, joining
// surrogate pairs written as two escapes.
func readUnicodeEscape(src []byte, i int) (rune, int, error) {
	if i < len(src) && src[i] == '{' {
		end := bytes.IndexByte(src[i:], '}')
		if end < 0 {
			return 0, 0, fmt.Errorf("unterminated unicode escape at offset %d", i)
		}
		value, err := strconv.ParseUint(string(src[i+1:i+end]), 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid unicode escape at offset %d: %w", i, err)
		}
		return rune(value), i + end + 1, nil
	}

	r, err := parseHex(src, i, 4)
	if err != nil {
		return 0, 0, err
	}
	next := i + 4
	if utf16.IsSurrogate(r) && next+6 <= len(src) && src[next] == '\\' && src[next+1] == 'u' {
		if low, err := parseHex(src, next+2, 4); err == nil {
			if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
				return pair, next + 6, nil
			}
		}
	}
	return r, next, nil
}

func parseHex(src []byte, i, digits int) (rune, error) {
	if i+digits > len(src) {
		return 0, fmt.Errorf("truncated escape at offset %d", i)
	}
	value, err := strconv.ParseUint(string(src[i:i+digits]), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid escape at offset %d: %w", i, err)
	}
	return rune(value), nil
}

// skipTrivia returns the offset of the next byte that is neither whitespace
// nor part of a comment.
func skipTrivia(src []byte, i int) int {
	for i < len(src) {
		switch {
		case isSpace(src[i]):
			i++
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			i = skipLineComment(src, i) + 1
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			end, err := skipBlockComment(src, i)
			if err != nil {
				return len(src)
			}
			i = end + 1
		default:
			return i
		}
	}
	return i
}

// jsonToLiteral rewrites encoder output back into the script dialect.
func jsonToLiteral(data []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(data))

	for i := 0; i < len(data); {
		if data[i] != '"' {
			out.WriteByte(data[i])
			i++
			continue
		}

		end := i + 1
		for end < len(data) && data[end] != '"' {
			if data[end] == '\\' {
				end++
			}
			end++
		}
		end++
		if end > len(data) {
			return nil, fmt.Errorf("unterminated string at offset %d", i)
		}

		var value string
		if err := json.Unmarshal(data[i:end], &value); err != nil {
			return nil, fmt.Errorf("decode string at offset %d: %w", i, err)
		}

		next := end
		for next < len(data) && isSpace(data[next]) {
			next++
		}
		if next < len(data) && data[next] == ':' && bareKey.MatchString(value) {
			out.WriteString(value)
		} else {
			out.WriteString(quoteSingle(value))
		}
		i = end
	}
	return out.Bytes(), nil
}

func quoteSingle(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('\'')
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberPart(c byte) bool {
	return isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}
