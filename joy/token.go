package joy

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/shakfu/pyjoy/internal/fileinput"
)

// tokenType names the lexical class of a token, per spec section 4.1.
type tokenType int

const (
	tokEOF tokenType = iota
	tokInteger
	tokFloat
	tokChar
	tokString
	tokLBracket // [
	tokRBracket // ]
	tokLBrace   // {
	tokRBrace   // }
	tokDefine   // DEFINE
	tokLibra    // LIBRA
	tokHide     // HIDE
	tokIn       // IN
	tokEnd      // END
	tokEqDef    // ==
	tokSemi     // ;
	tokDot      // .
	tokModule   // MODULE
	tokPrivate  // PRIVATE
	tokPublic   // PUBLIC
	tokSymbol   // identifier
)

// token is one lexical unit, carrying the source position spec section 3.4
// requires ("Each token produced by the reader carries (file, line,
// column) so diagnostics point to the original source").
type token struct {
	typ  tokenType
	text string
	ival int64
	fval float64
	pos  Position
}

// keywords maps the reader's reserved words (spec 4.1's "Delimiters") to
// their token types. Everything else that doesn't start a literal is a
// SYMBOL.
var keywords = map[string]tokenType{
	"DEFINE":  tokDefine,
	"LIBRA":   tokLibra,
	"HIDE":    tokHide,
	"IN":      tokIn,
	"END":     tokEnd,
	"MODULE":  tokModule,
	"PRIVATE": tokPrivate,
	"PUBLIC":  tokPublic,
}

// lexer tokenizes Joy source text. Grounded on gothird's own scan() (io.go),
// which read a rune stream and split it into whitespace-delimited words;
// this lexer needs more lookahead (for "==", numeric literals, block
// comments, and quoted literals) so it layers a small pushback buffer over
// fileinput.Input rather than gothird's single ReadRune loop.
type lexer struct {
	in      *fileinput.Input
	pending []runeAt
	err     error
}

type runeAt struct {
	r   rune
	pos Position
}

func newLexer(name string, r io.Reader) *lexer {
	in := &fileinput.Input{Queue: []io.Reader{namedReader{r, name}}}
	return &lexer{in: in}
}

// addSource appends another reader to the lexer's queue, so that scanning
// continues into it once the current source is exhausted. Nothing in the
// package calls it: include and the CLI's file arguments each start a
// fresh lexer through Run.
func (lx *lexer) addSource(name string, r io.Reader) {
	lx.in.Queue = append(lx.in.Queue, namedReader{r, name})
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func (lx *lexer) here() Position {
	return Position{File: lx.in.Scan.Name, Line: lx.in.Scan.Line, Column: lx.in.Scan.Column + 1}
}

func (lx *lexer) readRune() (runeAt, bool) {
	if len(lx.pending) > 0 {
		ra := lx.pending[0]
		lx.pending = lx.pending[1:]
		return ra, true
	}
	r, _, err := lx.in.ReadRune()
	if err != nil {
		if err != io.EOF {
			lx.err = err
		}
		return runeAt{}, false
	}
	return runeAt{r: r, pos: lx.here()}, true
}

func (lx *lexer) unread(ra runeAt) {
	lx.pending = append([]runeAt{ra}, lx.pending...)
}

func (lx *lexer) peekRune() (runeAt, bool) {
	ra, ok := lx.readRune()
	if ok {
		lx.unread(ra)
	}
	return ra, ok
}

// next returns the next token, or a tokEOF token at end of input.
func (lx *lexer) next() (token, error) {
	if err := lx.skipSpaceAndComments(); err != nil {
		return token{}, err
	}
	ra, ok := lx.readRune()
	if !ok {
		if lx.err != nil {
			return token{}, lx.err
		}
		return token{typ: tokEOF, pos: lx.here()}, nil
	}
	pos := ra.pos

	switch {
	case ra.r == '[':
		return token{typ: tokLBracket, pos: pos}, nil
	case ra.r == ']':
		return token{typ: tokRBracket, pos: pos}, nil
	case ra.r == '{':
		return token{typ: tokLBrace, pos: pos}, nil
	case ra.r == '}':
		return token{typ: tokRBrace, pos: pos}, nil
	case ra.r == ';':
		return token{typ: tokSemi, pos: pos}, nil
	case ra.r == '.':
		if next, ok := lx.peekRune(); ok && !isDelimiterBoundary(next.r) {
			return lx.lexSymbolOrNumber(ra, pos)
		}
		return token{typ: tokDot, pos: pos}, nil
	case ra.r == '=':
		if next, ok := lx.peekRune(); ok && next.r == '=' {
			lx.readRune()
			return token{typ: tokEqDef, pos: pos}, nil
		}
		return lx.lexSymbolOrNumber(ra, pos)
	case ra.r == '\'':
		return lx.lexChar(ra, pos)
	case ra.r == '"':
		return lx.lexString(pos)
	default:
		return lx.lexSymbolOrNumber(ra, pos)
	}
}

// skipSpaceAndComments advances past whitespace, "# ... \n" line comments,
// and "(* ... *)" block comments, per spec 4.1.
func (lx *lexer) skipSpaceAndComments() error {
	for {
		ra, ok := lx.readRune()
		if !ok {
			return lx.err
		}
		switch {
		case unicode.IsSpace(ra.r):
			continue
		case ra.r == '#':
			for {
				next, ok := lx.readRune()
				if !ok || next.r == '\n' {
					break
				}
			}
			continue
		case ra.r == '(':
			next, ok := lx.peekRune()
			if ok && next.r == '*' {
				lx.readRune()
				if err := lx.skipBlockComment(ra.pos); err != nil {
					return err
				}
				continue
			}
			lx.unread(ra)
			return nil
		default:
			lx.unread(ra)
			return nil
		}
	}
}

func (lx *lexer) skipBlockComment(start Position) error {
	depth := 1
	for depth > 0 {
		ra, ok := lx.readRune()
		if !ok {
			if lx.err != nil {
				return lx.err
			}
			return &ParseError{Message: "unterminated (* comment", Pos: start}
		}
		if ra.r == '(' {
			if next, ok := lx.peekRune(); ok && next.r == '*' {
				lx.readRune()
				depth++
				continue
			}
		}
		if ra.r == '*' {
			if next, ok := lx.peekRune(); ok && next.r == ')' {
				lx.readRune()
				depth--
				continue
			}
		}
	}
	return nil
}

// isDelimiterBoundary reports whether r ends a maximal identifier/number
// run (spec 4.1: an identifier is "any other maximal run of non-whitespace
// characters that does not begin a recognized literal").
func isDelimiterBoundary(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '[', ']', '{', '}', ';', '"', '\'':
		return true
	default:
		return false
	}
}

func (lx *lexer) lexSymbolOrNumber(first runeAt, pos Position) (token, error) {
	var sb strings.Builder
	sb.WriteRune(first.r)
	for {
		next, ok := lx.peekRune()
		if !ok || isDelimiterBoundary(next.r) {
			break
		}
		lx.readRune()
		sb.WriteRune(next.r)
	}
	text := sb.String()

	if tt, ok := keywords[text]; ok {
		return token{typ: tt, text: text, pos: pos}, nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return token{typ: tokInteger, text: text, ival: n, pos: pos}, nil
	}
	if looksLikeFloat(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return token{typ: tokFloat, text: text, fval: f, pos: pos}, nil
		}
		return token{}, &ParseError{Message: "malformed numeric literal " + strconv.Quote(text), Pos: pos}
	}
	return token{typ: tokSymbol, text: text, pos: pos}, nil
}

func looksLikeFloat(text string) bool {
	return strings.ContainsAny(text, ".eE") &&
		strings.IndexFunc(text, unicode.IsDigit) >= 0
}

func (lx *lexer) lexChar(start runeAt, pos Position) (token, error) {
	ra, ok := lx.readRune()
	if !ok {
		return token{}, &ParseError{Message: "unterminated character literal", Pos: pos}
	}
	if ra.r != '\\' {
		return token{typ: tokChar, ival: int64(ra.r), pos: pos}, nil
	}
	esc, ok := lx.readRune()
	if !ok {
		return token{}, &ParseError{Message: "unterminated character literal", Pos: pos}
	}
	r, err := decodeEscape(esc.r, lx)
	if err != nil {
		return token{}, &ParseError{Message: err.Error(), Pos: pos}
	}
	return token{typ: tokChar, ival: int64(r), pos: pos}, nil
}

func (lx *lexer) lexString(pos Position) (token, error) {
	var sb strings.Builder
	for {
		ra, ok := lx.readRune()
		if !ok {
			return token{}, &ParseError{Message: "unterminated string literal", Pos: pos}
		}
		if ra.r == '"' {
			return token{typ: tokString, text: sb.String(), pos: pos}, nil
		}
		if ra.r == '\\' {
			esc, ok := lx.readRune()
			if !ok {
				return token{}, &ParseError{Message: "unterminated string literal", Pos: pos}
			}
			r, err := decodeEscape(esc.r, lx)
			if err != nil {
				return token{}, &ParseError{Message: err.Error(), Pos: pos}
			}
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(ra.r)
	}
}

// decodeEscape resolves the escape set spec 4.1 names: \n \t \\ \' \NNN
// (octal). Grounded on internal/runeio's control-rune tables for the
// underlying named-control concept, generalized here to the small,
// Joy-specific escape grammar rather than runeio's terminal-oriented
// mnemonics.
func decodeEscape(r rune, lx *lexer) (rune, error) {
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case '0', '1', '2', '3', '4', '5', '6', '7':
		digits := []rune{r}
		for len(digits) < 3 {
			next, ok := lx.peekRune()
			if !ok || next.r < '0' || next.r > '7' {
				break
			}
			lx.readRune()
			digits = append(digits, next.r)
		}
		n, err := strconv.ParseInt(string(digits), 8, 32)
		if err != nil {
			return 0, err
		}
		return rune(n), nil
	default:
		return r, nil
	}
}
