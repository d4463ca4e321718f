package parser

import "fmt"

type tokenKind int

const (
	tokEOF    tokenKind = iota
	tokWord             // run of letters
	tokNumber           // run of digits
	tokMinus            // '-'
	tokLParen           // '('
	tokText             // raw description between parentheses
	tokRParen           // ')'
	tokSep              // one of , ; . :
	tokOther            // any other single character
)

var kindNames = map[tokenKind]string{
	tokEOF: "end of input", tokWord: "word", tokNumber: "number", tokMinus: "'-'",
	tokLParen: "'('", tokText: "description", tokRParen: "')'", tokSep: "separator", tokOther: "character",
}

func (k tokenKind) String() string {
	return kindNames[k]
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

// lexer turns script text into tokens. Whitespace is dropped; a description
// is read verbatim up to ')' or the end of its line.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func tokenize(src string, firstLine int) []token {
	lx := &lexer{src: src, line: firstLine, col: 1}
	var toks []token
	for {
		t := lx.next()
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks
		}
		if t.kind == tokLParen {
			toks = append(toks, lx.description()...)
		}
	}
}

func (lx *lexer) peekByte() (byte, bool) {
	if lx.pos >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.pos], true
}

func (lx *lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return c
}

func (lx *lexer) next() token {
	for {
		c, ok := lx.peekByte()
		if !ok {
			return token{kind: tokEOF, line: lx.line, col: lx.col}
		}
		if !isSpace(c) {
			break
		}
		lx.advance()
	}

	line, col, start := lx.line, lx.col, lx.pos
	c := lx.advance()
	switch {
	case isLetter(c):
		lx.takeWhile(isLetter)
		return token{kind: tokWord, text: lx.src[start:lx.pos], line: line, col: col}
	case isDigit(c):
		lx.takeWhile(isDigit)
		return token{kind: tokNumber, text: lx.src[start:lx.pos], line: line, col: col}
	case c == '-':
		return token{kind: tokMinus, text: "-", line: line, col: col}
	case c == '(':
		return token{kind: tokLParen, text: "(", line: line, col: col}
	case c == ')':
		return token{kind: tokRParen, text: ")", line: line, col: col}
	case c == ',' || c == ';' || c == '.' || c == ':':
		return token{kind: tokSep, text: string(c), line: line, col: col}
	}
	return token{kind: tokOther, text: string(c), line: line, col: col}
}

// description emits the raw text after '(' and the closing ')' if it is
// found before the end of the line.
func (lx *lexer) description() []token {
	line, col, start := lx.line, lx.col, lx.pos
	lx.takeWhile(func(c byte) bool { return c != ')' && c != '\n' })
	toks := []token{{kind: tokText, text: lx.src[start:lx.pos], line: line, col: col}}
	if c, ok := lx.peekByte(); ok && c == ')' {
		toks = append(toks, token{kind: tokRParen, text: ")", line: lx.line, col: lx.col})
		lx.advance()
	}
	return toks
}

func (lx *lexer) takeWhile(pred func(byte) bool) {
	for {
		c, ok := lx.peekByte()
		if !ok || !pred(c) {
			return
		}
		lx.advance()
	}
}

func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
