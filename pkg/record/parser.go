package record

import (
	"fmt"
)

// Parse parses record text. The compact single-line form and the pretty form
// produced by String are both accepted.
//
// The first entry must be owner, holding a public or private address, and
// the second must be gates, holding a public or private u64. A _nonce entry, when present, must be the last entry and a public group
// literal. Entry names are unique per struct level.
func Parse(text string) (*RecordPlaintext, error) {
	p := &parser{in: text}

	r, err := p.record()
	if err != nil {
		log.Debugf("Rejected record text: %v", err)
		return nil, err
	}
	return r, nil
}

type parser struct {
	in  string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) wrap(offset int, msg string, cause error) error {
	return &ParseError{Offset: offset, Message: msg, Cause: cause}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.in) {
		switch p.in[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next non-space byte, or 0 at end of input.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.in) {
		return 0
	}
	return p.in[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		if p.pos >= len(p.in) {
			return p.errorf("expected %q, found end of input", c)
		}
		return p.errorf("expected %q, found %q", c, p.in[p.pos])
	}
	p.pos++
	return nil
}

// name reads an entry name. It accepts the identifier alphabet plus a
// leading underscore so that _nonce can be recognized.
func (p *parser) name() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.in) && isIdentChar(p.in[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return "", p.errorf("expected entry name")
	}
	return p.in[start:p.pos], nil
}

// literal reads "<literal>.<visibility>".
func (p *parser) literal() (LiteralValue, error) {
	p.skipSpace()
	start := p.pos

	if p.pos < len(p.in) && p.in[p.pos] == '"' {
		_, n, err := unquote(p.in[p.pos:])
		if err != nil {
			return LiteralValue{}, p.wrap(start, "invalid string literal", err)
		}
		p.pos += n
	} else {
		for p.pos < len(p.in) && (isIdentChar(p.in[p.pos]) || p.in[p.pos] == '-') {
			p.pos++
		}
	}
	tok := p.in[start:p.pos]
	if tok == "" {
		return LiteralValue{}, p.errorf("expected literal")
	}

	lit, err := ParseLiteral(tok)
	if err != nil {
		return LiteralValue{}, p.wrap(start, "invalid literal", err)
	}

	if p.pos >= len(p.in) || p.in[p.pos] != '.' {
		return LiteralValue{}, p.errorf("expected visibility after literal")
	}
	p.pos++

	visStart := p.pos
	for p.pos < len(p.in) && isLetter(p.in[p.pos]) {
		p.pos++
	}
	vis, err := ParseVisibility(p.in[visStart:p.pos])
	if err != nil {
		return LiteralValue{}, p.wrap(visStart, "invalid visibility", err)
	}

	return LiteralValue{Literal: lit, Visibility: vis}, nil
}

func (p *parser) record() (*RecordPlaintext, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	name, err := p.name()
	if err != nil {
		return nil, err
	}
	if name != OwnerName {
		return nil, p.errorf("first entry must be %s, found %q", OwnerName, name)
	}
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	ownerAt := p.pos
	ov, err := p.literal()
	if err != nil {
		return nil, err
	}
	addr, ok := ov.Literal.Address()
	if !ok {
		return nil, p.wrap(ownerAt, "owner must be an address", nil)
	}
	if ov.Visibility == Constant {
		return nil, p.wrap(ownerAt, "owner cannot be constant", nil)
	}

	gates, err := p.gates()
	if err != nil {
		return nil, err
	}

	r := &RecordPlaintext{
		owner: Owner{Address: addr, Visibility: ov.Visibility},
		gates: &gates,
	}
	seen := map[string]struct{}{OwnerName: {}, BalanceName: {}}

	for p.peek() == ',' {
		p.pos++

		at := p.pos
		name, err := p.name()
		if err != nil {
			return nil, err
		}

		if name == NonceName {
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			nonceAt := p.pos
			nv, err := p.literal()
			if err != nil {
				return nil, err
			}
			if nv.Literal.Type() != TypeGroup || nv.Visibility != Public {
				return nil, p.wrap(nonceAt, "_nonce must be a public group literal", nil)
			}
			g := nv.Literal.group
			r.nonce = &g
			break
		}

		if len(r.entries) == MaxEntries {
			return nil, p.wrap(at, fmt.Sprintf("more than %d entries", MaxEntries), nil)
		}
		e, err := p.entry(name, at, seen, 1)
		if err != nil {
			return nil, err
		}
		r.entries = append(r.entries, e)
	}

	if err := p.expect('}'); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.in) {
		return nil, p.errorf("trailing characters after record")
	}
	return r, nil
}

// gates reads the ", gates: <u64>.<visibility>" that must follow owner.
func (p *parser) gates() (Gates, error) {
	at := p.pos
	if p.peek() != ',' {
		return Gates{}, p.wrap(at, "expected "+BalanceName+" after "+OwnerName, ErrMissingBalance)
	}
	p.pos++

	at = p.pos
	name, err := p.name()
	if err != nil || name != BalanceName {
		return Gates{}, p.wrap(at, "second entry must be "+BalanceName, ErrMissingBalance)
	}
	if err := p.expect(':'); err != nil {
		return Gates{}, err
	}

	at = p.pos
	if p.peek() == '{' {
		return Gates{}, p.wrap(at, "invalid "+BalanceName, ErrBalanceNotNumeric)
	}
	v, err := p.literal()
	if err != nil {
		return Gates{}, err
	}
	amount, ok := v.Literal.Uint64()
	if !ok {
		return Gates{}, p.wrap(at, "invalid "+BalanceName, ErrBalanceNotNumeric)
	}
	if v.Visibility == Constant {
		return Gates{}, p.wrap(at, BalanceName+" cannot be constant", nil)
	}
	return Gates{Amount: amount, Visibility: v.Visibility}, nil
}

// entry parses the ":" and value following name.
func (p *parser) entry(name string, at int, seen map[string]struct{}, depth int) (Entry, error) {
	if _, err := ParseIdentifier(name); err != nil {
		return Entry{}, p.wrap(at, "invalid entry name", err)
	}
	if _, dup := seen[name]; dup {
		return Entry{}, p.wrap(at, "duplicate entry "+name, nil)
	}
	seen[name] = struct{}{}

	if err := p.expect(':'); err != nil {
		return Entry{}, err
	}

	if p.peek() != '{' {
		v, err := p.literal()
		if err != nil {
			return Entry{}, err
		}
		return Entry{Name: name, Value: v}, nil
	}

	if depth >= MaxDepth {
		return Entry{}, p.errorf("struct nesting too deep")
	}
	p.pos++

	var members []Entry
	inner := make(map[string]struct{})
	for {
		if len(members) == MaxEntries {
			return Entry{}, p.errorf("more than %d entries", MaxEntries)
		}
		mat := p.pos
		mname, err := p.name()
		if err != nil {
			return Entry{}, err
		}
		m, err := p.entry(mname, mat, inner, depth+1)
		if err != nil {
			return Entry{}, err
		}
		members = append(members, m)

		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect('}'); err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Value: StructValue{Members: members}}, nil
}
