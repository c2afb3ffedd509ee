package joy

import "io"

// phraseKind distinguishes the two shapes spec section 4.1 says a top-level
// phrase can take.
type phraseKind int

const (
	phraseTerm phraseKind = iota
	phraseDefs
)

// userDef is one (head-symbol, body-list) pair out of a DEFINE/LIBRA block.
type userDef struct {
	name string
	id   symbolID
	body []Value
}

// astPhrase is the reader's unit of output: "a top-level sequence of
// phrases. A phrase is either a definition set ... or a term sequence ...
// The top-level terminating '.' triggers evaluation of the accumulated
// phrase."
type astPhrase struct {
	kind phraseKind
	defs []userDef // set when kind == phraseDefs
	term []Value   // set when kind == phraseTerm
}

// parser turns a token stream into astPhrase values. Symbols are interned
// against env as they're read, so a word referenced before its DEFINE still
// gets a stable id (spec 3.3: forward references are just symbols that
// happen to be unbound until defined).
type parser struct {
	lx     *lexer
	env    *Environment
	tok    token
	peeked bool
}

func newParser(env *Environment, lx *lexer) *parser {
	return &parser{lx: lx, env: env}
}

func (p *parser) advance() (token, error) {
	if p.peeked {
		p.peeked = false
		return p.tok, nil
	}
	return p.lx.next()
}

func (p *parser) peek() (token, error) {
	if !p.peeked {
		tok, err := p.lx.next()
		if err != nil {
			return token{}, err
		}
		p.tok = tok
		p.peeked = true
	}
	return p.tok, nil
}

// skipTransparent consumes MODULE/PRIVATE/PUBLIC markers wherever they
// appear at a phrase boundary. Spec 4.1 calls these "optional scoping
// markers — treated as transparent"; it gives no further grammar for them,
// so this reader's decision (recorded in the design notes) is to drop them
// on the floor rather than model a module/visibility system the rest of
// the core has no use for. MODULE additionally names the module, so its
// following SYMBOL is consumed too.
func (p *parser) skipTransparent() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch tok.typ {
		case tokModule:
			p.advance()
			if next, err := p.peek(); err == nil && next.typ == tokSymbol {
				p.advance()
			}
		case tokPrivate, tokPublic:
			p.advance()
		default:
			return nil
		}
	}
}

// nextPhrase reads and returns the next top-level phrase, or io.EOF once
// the input is exhausted.
func (p *parser) nextPhrase() (*astPhrase, error) {
	if err := p.skipTransparent(); err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.typ {
	case tokEOF:
		return nil, io.EOF
	case tokDefine:
		p.advance()
		return p.parseDefineBlock()
	case tokLibra:
		p.advance()
		return p.parseLibraBlock()
	default:
		return p.parseTermPhrase()
	}
}

// parseDefineBlock parses "DEFINE def1 ; def2 ; ... END".
func (p *parser) parseDefineBlock() (*astPhrase, error) {
	var defs []userDef
	for {
		if err := p.skipTransparent(); err != nil {
			return nil, err
		}
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokEnd {
			p.advance()
			break
		}
		d, err := p.parseSimpleDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
		if tok, err = p.peek(); err == nil && tok.typ == tokSemi {
			p.advance()
		}
	}
	return &astPhrase{kind: phraseDefs, defs: defs}, nil
}

// parseLibraBlock parses "LIBRA def* [ HIDE def* IN ] def* END". Since
// Environment (env.go) has no lexical scoping, definitions inside HIDE ...
// IN are installed the same as any other: LIBRA's visibility distinction is
// a module-system concern this core does not implement, so both halves
// collapse into one flat definition set (recorded as an Open Question
// decision).
func (p *parser) parseLibraBlock() (*astPhrase, error) {
	var defs []userDef
	for {
		if err := p.skipTransparent(); err != nil {
			return nil, err
		}
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.typ {
		case tokEnd:
			p.advance()
			return &astPhrase{kind: phraseDefs, defs: defs}, nil
		case tokHide:
			p.advance()
			for {
				if err := p.skipTransparent(); err != nil {
					return nil, err
				}
				tok, err := p.peek()
				if err != nil {
					return nil, err
				}
				if tok.typ == tokIn {
					p.advance()
					break
				}
				d, err := p.parseSimpleDefinition()
				if err != nil {
					return nil, err
				}
				defs = append(defs, d)
				if tok, err = p.peek(); err == nil && tok.typ == tokSemi {
					p.advance()
				}
			}
		default:
			d, err := p.parseSimpleDefinition()
			if err != nil {
				return nil, err
			}
			defs = append(defs, d)
			if tok, err = p.peek(); err == nil && tok.typ == tokSemi {
				p.advance()
			}
		}
	}
}

// parseSimpleDefinition parses "head == body-terms", stopping at the first
// ';', END, IN, or end of input.
func (p *parser) parseSimpleDefinition() (userDef, error) {
	head, err := p.advance()
	if err != nil {
		return userDef{}, err
	}
	if head.typ != tokSymbol {
		return userDef{}, &ParseError{Message: "expected a symbol to define", Pos: head.pos}
	}
	eq, err := p.advance()
	if err != nil {
		return userDef{}, err
	}
	if eq.typ != tokEqDef {
		return userDef{}, &ParseError{Message: "missing == in definition of " + head.text, Pos: eq.pos}
	}
	var body []Value
	for {
		tok, err := p.peek()
		if err != nil {
			return userDef{}, err
		}
		if tok.typ == tokSemi || tok.typ == tokEnd || tok.typ == tokIn || tok.typ == tokEOF {
			break
		}
		v, err := p.parseTerm()
		if err != nil {
			return userDef{}, err
		}
		body = append(body, v)
	}
	id := p.env.intern(head.text)
	return userDef{name: head.text, id: id, body: body}, nil
}

// parseTermPhrase parses a bare term sequence up to its terminating '.'.
func (p *parser) parseTermPhrase() (*astPhrase, error) {
	var terms []Value
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokDot {
			p.advance()
			break
		}
		if tok.typ == tokEOF {
			if len(terms) == 0 {
				return nil, io.EOF
			}
			return nil, &ParseError{Message: "missing '.' at end of phrase", Pos: tok.pos}
		}
		v, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, v)
	}
	return &astPhrase{kind: phraseTerm, term: terms}, nil
}

// parseTerm reads one literal or symbol reference. true/false and
// stdin/stdout/stderr are reserved identifiers the lexer hands back as
// plain SYMBOL tokens; the reader recognizes them here as their literal
// kinds rather than as word references, matching spec 3.1's literal-form
// list for BOOLEAN and FILE.
func (p *parser) parseTerm() (Value, error) {
	tok, err := p.advance()
	if err != nil {
		return Value{}, err
	}
	switch tok.typ {
	case tokInteger:
		return mkInt(tok.ival), nil
	case tokFloat:
		return mkFloat(tok.fval), nil
	case tokChar:
		return mkChar(rune(tok.ival)), nil
	case tokString:
		return mkString(tok.text), nil
	case tokLBracket:
		return p.parseList()
	case tokLBrace:
		return p.parseSet()
	case tokSymbol:
		switch tok.text {
		case "true":
			return mkBool(true), nil
		case "false":
			return mkBool(false), nil
		case "stdin":
			return mkFile(handleStdin), nil
		case "stdout":
			return mkFile(handleStdout), nil
		case "stderr":
			return mkFile(handleStderr), nil
		default:
			return mkSymbol(p.env.intern(tok.text)), nil
		}
	default:
		return Value{}, &ParseError{Message: "unexpected token in term position", Pos: tok.pos}
	}
}

func (p *parser) parseList() (Value, error) {
	var elems []Value
	for {
		tok, err := p.peek()
		if err != nil {
			return Value{}, err
		}
		if tok.typ == tokRBracket {
			p.advance()
			return mkList(elems), nil
		}
		if tok.typ == tokEOF {
			return Value{}, &ParseError{Message: "unterminated list literal", Pos: tok.pos}
		}
		v, err := p.parseTerm()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
}

func (p *parser) parseSet() (Value, error) {
	var bits uint64
	for {
		tok, err := p.peek()
		if err != nil {
			return Value{}, err
		}
		if tok.typ == tokRBrace {
			p.advance()
			return mkSet(bits), nil
		}
		if tok.typ != tokInteger {
			return Value{}, &ParseError{Message: "set literals contain only integers", Pos: tok.pos}
		}
		p.advance()
		if tok.ival < 0 || tok.ival >= setWidth {
			return Value{}, &DomainError{Op: "{}", Detail: "set member out of range", Pos: tok.pos}
		}
		bits = setAdd(bits, int(tok.ival))
	}
}
