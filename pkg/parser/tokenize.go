package parser

// TokenKind identifies one lexical element of an import path expression.
type TokenKind uint8

const (
	TokenIdent      TokenKind = iota // identifier, including crate/super/self keywords
	TokenPathSep                     // "::"
	TokenOpenGroup                   // "{"
	TokenCloseGroup                  // "}"
	TokenComma                       // ","
	TokenWildcard                    // "*"
)

// Token is one element of the flat token stream fed to the tree parser.
type Token struct {
	Kind TokenKind
	Text string // set only for TokenIdent
}

// Tokenize converts a normalized declaration body into a flat token
// stream. Characters that can't start a token are skipped; they don't
// occur in well-formed input.
func Tokenize(body string) []Token {
	var tokens []Token
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == ':' && i+1 < len(body) && body[i+1] == ':':
			tokens = append(tokens, Token{Kind: TokenPathSep})
			i += 2
		case c == '{':
			tokens = append(tokens, Token{Kind: TokenOpenGroup})
			i++
		case c == '}':
			tokens = append(tokens, Token{Kind: TokenCloseGroup})
			i++
		case c == ',':
			tokens = append(tokens, Token{Kind: TokenComma})
			i++
		case c == '*':
			tokens = append(tokens, Token{Kind: TokenWildcard})
			i++
		case isIdentStart(c):
			start := i
			for i < len(body) && isIdentPart(body[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenIdent, Text: body[start:i]})
		default:
			i++
		}
	}
	return tokens
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
