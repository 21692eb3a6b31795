package argparse

// binder walks the raw arguments of one schema. Arguments are lexed one at a
// time against the schema's own option names; what follows a subcommand name
// is handed to the subcommand untouched.
type binder struct {
	scanner
	a     *Args
	raw   []string
	pos   int
	words []Token // bare words waiting for positional matching
	done  bool    // a subcommand consumed the rest
}

// bind matches raw against the schema and writes the bound values.
func (a *Args) bind(raw []string) error {
	b := &binder{scanner: scanner{set: a}, a: a, raw: raw}
	for !b.done {
		tok, ok := b.peek()
		if !ok {
			break
		}
		if err := b.step(tok); err != nil {
			return err
		}
	}
	if err := b.bindPositionals(); err != nil {
		return err
	}
	if err := b.finish(); err != nil {
		return err
	}
	for _, fn := range a.checkFn {
		if err := fn(a); err != nil {
			return &CheckError{Command: a.name, Err: err}
		}
	}
	return nil
}

// peek lexes the current argument, skipping a first "--".
func (b *binder) peek() (Token, bool) {
	for ; b.pos < len(b.raw); b.pos++ {
		if tok, ok := b.scan(b.raw[b.pos]); ok {
			return tok, true
		}
	}
	return Token{}, false
}

// peekValue is peek for the values of a keyword, which end at "--".
func (b *binder) peekValue() (Token, bool) {
	if !b.literal && b.pos < len(b.raw) && b.raw[b.pos] == terminator {
		return Token{}, false
	}
	return b.peek()
}

func (b *binder) advance() {
	b.pos++
}

// rest returns the unread arguments, re-adding "--" when it was seen so the
// receiver keeps treating them as bare words.
func (b *binder) rest() []string {
	rest := b.raw[b.pos:]
	if b.literal {
		return append([]string{terminator}, rest...)
	}
	return append([]string(nil), rest...)
}

func (b *binder) step(tok Token) error {
	switch tok.Kind {
	case BareWord:
		return b.bareWord(tok)
	case ShortCluster:
		return b.cluster(tok)
	}

	if b.isHelp(tok) {
		return &HelpError{Args: b.a}
	}
	d, ok := b.a.option(tok.Name)
	if !ok {
		if isNumeric(tok.Raw) {
			return b.bareWord(Token{Kind: BareWord, Raw: tok.Raw})
		}
		return b.unrecognized(tok.Raw)
	}
	b.advance()
	if d.kind == KindFlag {
		if tok.HasValue {
			return b.assign(d, []string{tok.Value})
		}
		return b.set(d, true)
	}
	return b.keyword(d, tok)
}

// cluster sets every flag of "-xyz". A keyword may close the cluster, it
// then takes its value from the following argument.
func (b *binder) cluster(tok Token) error {
	b.advance()
	for _, n := range tok.Names {
		d, _ := b.a.option(n)
		if d.kind == KindKeyword {
			return b.keyword(d, Token{Kind: ShortOption, Name: n, Raw: tok.Raw})
		}
		if err := b.set(d, true); err != nil {
			return err
		}
	}
	return nil
}

// keyword binds the value of d named by tok, which has been consumed.
func (b *binder) keyword(d *Declaration, tok Token) error {
	if tok.HasValue {
		return b.assign(d, []string{tok.Value})
	}

	next, ok := b.peekValue()
	if d.implicitText != nil && (!ok || looksLikeOption(next)) {
		return b.set(d, d.implicit)
	}

	if d.shape == ShapeMultiToken {
		var texts []string
		for {
			next, ok := b.peekValue()
			if !ok || looksLikeOption(next) {
				break
			}
			texts = append(texts, next.Raw)
			b.advance()
		}
		return b.assign(d, texts)
	}

	if ok && b.isHelp(next) {
		return &HelpError{Args: b.a}
	}
	if !ok || b.recognized(next) {
		return &MissingArgumentError{Name: d.Name(), Help: d.help, Command: b.a.name}
	}
	b.advance()
	return b.assign(d, []string{next.Raw})
}

// looksLikeOption reports whether tok cannot be a value of a multi-token or
// implicit keyword. Negative numbers are values.
func looksLikeOption(tok Token) bool {
	return tok.Kind != BareWord && !isNumeric(tok.Raw)
}

// recognized reports whether tok names something this schema declares, in
// which case it is not taken as the value of a preceding keyword.
func (b *binder) recognized(tok Token) bool {
	switch tok.Kind {
	case BareWord:
		return false
	case ShortCluster:
		return true
	}
	if _, ok := b.a.option(tok.Name); ok {
		return true
	}
	return b.isHelp(tok)
}

// isHelp reports whether tok asks for the usage of this schema: -h or
// --help without a value, unless h is declared.
func (b *binder) isHelp(tok Token) bool {
	if (tok.Kind != LongOption && tok.Kind != ShortOption) || tok.HasValue {
		return false
	}
	if _, ok := b.a.option(tok.Name); ok {
		return false
	}
	return tok.Name == "help" || tok.Name == "h"
}

func (b *binder) bareWord(tok Token) error {
	if b.positionalPending() {
		b.words = append(b.words, tok)
		b.advance()
		return nil
	}
	if sub, ok := b.a.subcommand(tok.Raw); ok {
		b.advance()
		return b.dispatch(sub)
	}
	return b.unrecognized(tok.Raw)
}

// positionalPending reports whether another bare word can still be matched
// to a positional declaration.
func (b *binder) positionalPending() bool {
	return b.a.multiPositional() || len(b.words) < len(b.a.positionals)
}

// bindPositionals matches the collected bare words to the positional
// declarations in order. A multi-token positional takes every word except
// those needed by the required positionals after it.
func (b *binder) bindPositionals() error {
	words := b.words
	for i, d := range b.a.positionals {
		if d.shape == ShapeMultiToken {
			reserve := 0
			for _, later := range b.a.positionals[i+1:] {
				if later.required {
					reserve++
				}
			}
			n := max(len(words)-reserve, 0)
			if n > 0 {
				texts := make([]string, n)
				for j, w := range words[:n] {
					texts[j] = w.Raw
				}
				if err := b.assign(d, texts); err != nil {
					return err
				}
			}
			words = words[n:]
			continue
		}
		if len(words) == 0 {
			break
		}
		if err := b.assign(d, []string{words[0].Raw}); err != nil {
			return err
		}
		words = words[1:]
	}
	if len(words) > 0 {
		return b.unrecognized(words[0].Raw)
	}
	return nil
}

// finish applies defaults and reports required declarations left unbound.
func (b *binder) finish() error {
	for _, d := range b.a.decls {
		if d.kind == KindSubcommand || d.state == StateBound {
			continue
		}
		switch {
		case d.hasDefault:
			d.value, d.state = d.def, StateDefaulted
		case d.required:
			return &MissingArgumentError{Name: d.Name(), Help: d.help, Command: b.a.name}
		default:
			d.value, d.state = nil, StateAbsent
		}
	}
	return nil
}

// assign converts texts and binds the result to d. List shaped values given
// more than once accumulate; single values keep the last one.
func (b *binder) assign(d *Declaration, texts []string) error {
	v, bad, err := d.convert(texts)
	if err != nil {
		return &ConversionError{
			Name: d.Name(), Help: d.help, Raw: bad,
			Command: b.a.name, Err: err,
		}
	}
	if d.isList() && d.state == StateBound {
		v = appendList(d.value, v)
	}
	return b.set(d, v)
}

func (b *binder) set(d *Declaration, v any) error {
	d.value, d.state = v, StateBound
	return nil
}

func (b *binder) unrecognized(raw string) error {
	return &UnrecognizedArgumentError{Raw: raw, Command: b.a.name}
}
