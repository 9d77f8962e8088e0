package scriptstore

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	errSpanNotFound  = errors.New("declaration not found")
	errSpanAmbiguous = errors.New("declaration is not unique")
)

// span locates `<keyword> <name> = [ ... ];` inside a script file.
type span struct {
	// start and end bound the whole declaration, including the optional
	// trailing semicolon.
	start, end int
	keyword    string
	// literal bounds the array literal from "[" to "]" inclusive.
	literalStart, literalEnd int
}

func declarationPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b(const|let|var)\s+` + regexp.QuoteMeta(name) + `\s*=\s*\[`)
}

func locate(src []byte, name string) (span, error) {
	matches := declarationPattern(name).FindAllSubmatchIndex(src, -1)
	switch {
	case len(matches) == 0:
		return span{}, errSpanNotFound
	case len(matches) > 1:
		return span{}, fmt.Errorf("%w: %d declarations", errSpanAmbiguous, len(matches))
	}

	match := matches[0]
	open := match[1] - 1
	closing, err := matchBracket(src, open)
	if err != nil {
		return span{}, err
	}

	end := closing + 1
	next := end
	for next < len(src) && isSpace(src[next]) {
		next++
	}
	if next < len(src) && src[next] == ';' {
		end = next + 1
	}

	return span{
		start:        match[0],
		end:          end,
		keyword:      string(src[match[2]:match[3]]),
		literalStart: open,
		literalEnd:   closing + 1,
	}, nil
}

// matchBracket returns the index of the "]" closing the "[" at open. String
// literals and comments are skipped.
func matchBracket(src []byte, open int) (int, error) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '\'', '"', '`':
			end, err := skipString(src, i)
			if err != nil {
				return -1, err
			}
			i = end
		case '/':
			if i+1 >= len(src) {
				continue
			}
			switch src[i+1] {
			case '/':
				i = skipLineComment(src, i)
			case '*':
				end, err := skipBlockComment(src, i)
				if err != nil {
					return -1, err
				}
				i = end
			}
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("unterminated array literal starting at offset %d", open)
}

// skipString returns the index of the quote closing the literal at start.
func skipString(src []byte, start int) (int, error) {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i, nil
		case '\n':
			if quote != '`' {
				return -1, fmt.Errorf("unterminated string at offset %d", start)
			}
		}
	}
	return -1, fmt.Errorf("unterminated string at offset %d", start)
}

// skipLineComment returns the index of the last byte before the newline.
func skipLineComment(src []byte, start int) int {
	i := start
	for i+1 < len(src) && src[i+1] != '\n' {
		i++
	}
	return i
}

// skipBlockComment returns the index of the closing "/".
func skipBlockComment(src []byte, start int) (int, error) {
	for i := start + 2; i+1 < len(src); i++ {
		if src[i] == '*' && src[i+1] == '/' {
			return i + 1, nil
		}
	}
	return -1, fmt.Errorf("unterminated comment at offset %d", start)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
