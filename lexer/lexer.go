// Package lexer scans whitespace-delimited words out of a stack of source
// blocks, tracking line/column position for diagnostics and supporting the
// longest-subtoken-first matching a dictionary lookup needs.
package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cellforth/cellforth/internal/fileinput"
)

// Position names a location within a named source block.
type Position struct {
	Name string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.Name == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Col)
}

// Token is a single space-delimited word scanned from a source block, along
// with the position it started at.
type Token struct {
	Text string
	Pos  Position
}

// block is one entry in the Lexer's source-block stack: an input reader plus
// bookkeeping to recover Position after each rune.
type block struct {
	name   string
	in     *fileinput.Input
	line   int
	col    int
	pushed []rune // pushback buffer used by Rewind and RewindString
}

func (b *block) readRune() (rune, error) {
	var r rune
	if len(b.pushed) > 0 {
		// unread stepped line/col back for this rune; reading it again
		// steps them forward below, the same as a fresh read.
		r = b.pushed[len(b.pushed)-1]
		b.pushed = b.pushed[:len(b.pushed)-1]
	} else {
		var err error
		if r, _, err = b.in.ReadRune(); err != nil {
			return 0, err
		}
	}
	if r == '\n' {
		b.line++
		b.col = 0
	} else {
		b.col++
	}
	return r, nil
}

func (b *block) unread(r rune) {
	b.pushed = append(b.pushed, r)
	if r == '\n' {
		b.line--
	} else if b.col > 0 {
		b.col--
	}
}

func (b *block) pos() Position { return Position{Name: b.name, Line: b.line, Col: b.col} }

// Lexer scans tokens off a stack of source blocks; PushSourceBlock layers a
// new input (e.g. for an `include` word) above whatever is currently being
// read, and that block is popped automatically at EOF.
type Lexer struct {
	blocks []*block
}

// New returns an empty Lexer with no source blocks pushed.
func New() *Lexer { return &Lexer{} }

// PushSourceBlock layers r, named name, atop the lexer's current input.
// Scanning continues from r until it is exhausted, then resumes in whatever
// block was active before the push.
func (lx *Lexer) PushSourceBlock(name string, r io.Reader) {
	lx.blocks = append(lx.blocks, &block{
		name: name,
		in:   &fileinput.Input{Queue: []io.Reader{r}},
		line: 1,
	})
}

// Depth reports how many source blocks remain on the stack.
func (lx *Lexer) Depth() int { return len(lx.blocks) }

// Position reports the position the lexer would report for the next token,
// or the zero Position if no source block is active.
func (lx *Lexer) Position() Position {
	if len(lx.blocks) == 0 {
		return Position{}
	}
	return lx.blocks[len(lx.blocks)-1].pos()
}

func (lx *Lexer) top() *block {
	for len(lx.blocks) > 0 {
		b := lx.blocks[len(lx.blocks)-1]
		return b
	}
	return nil
}

func (lx *Lexer) popIfDone(err error) {
	if err == io.EOF && len(lx.blocks) > 0 {
		lx.blocks = lx.blocks[:len(lx.blocks)-1]
	}
}

// readRune reads the next rune across the block stack, transparently popping
// exhausted blocks.
func (lx *Lexer) readRune() (rune, error) {
	for {
		b := lx.top()
		if b == nil {
			return 0, io.EOF
		}
		r, err := b.readRune()
		if err != nil {
			lx.popIfDone(err)
			if err == io.EOF {
				continue
			}
			return 0, err
		}
		return r, nil
	}
}

// Rewind pushes r back onto the current (topmost) source block, so the next
// readRune call returns it again. Used to push back a rune read one past the
// end of a token.
func (lx *Lexer) Rewind(r rune) {
	if b := lx.top(); b != nil {
		b.unread(r)
	}
}

// RewindString pushes s back onto the current (topmost) source block, one
// rune at a time, so the next Next call scans it again as if it had never
// been consumed. Used when a token decomposes into a matched prefix and an
// unconsumed remainder: the remainder is rewound and rescanned as a fresh
// token rather than resolved in-place.
func (lx *Lexer) RewindString(s string) {
	b := lx.top()
	if b == nil {
		return
	}
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		b.unread(runes[i])
	}
}

// SkipWhitespace advances past any run of whitespace, leaving the lexer
// positioned at the first non-whitespace rune (which is rewound).
func (lx *Lexer) SkipWhitespace() error {
	for {
		r, err := lx.readRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			lx.Rewind(r)
			return nil
		}
	}
}

// Next scans the next whitespace-delimited token, skipping any leading
// whitespace first. It returns io.EOF once every source block is exhausted.
func (lx *Lexer) Next() (Token, error) {
	if err := lx.SkipWhitespace(); err != nil {
		return Token{}, err
	}
	pos := lx.Position()
	if pos == (Position{}) {
		return Token{}, io.EOF
	}

	var sb strings.Builder
	for {
		r, err := lx.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if unicode.IsSpace(r) {
			lx.Rewind(r)
			break
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return Token{}, io.EOF
	}
	return Token{Text: sb.String(), Pos: pos}, nil
}

// ScanUntil reads and discards runes until one matching delim is consumed,
// returning everything read before it (not including delim). Used for
// quoted-string and comment scanning.
func (lx *Lexer) ScanUntil(delim rune) (string, error) {
	var sb strings.Builder
	for {
		r, err := lx.readRune()
		if err != nil {
			return sb.String(), err
		}
		if r == delim {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// Subtokens iterates the longest-prefix-first decompositions of a token's
// text, for matching against a dictionary of known word spellings when the
// whole token does not itself resolve. Each call to Next peels the longest
// remaining prefix; a byte-accurate UTF-8 boundary is always respected.
type Subtokens struct {
	text string
	pos  int // exclusive end of the most recently returned prefix
	next int // search cursor for the next call to Next
}

// NewSubtokens begins iterating s from its full length down to a single
// rune.
func NewSubtokens(s string) *Subtokens { return &Subtokens{text: s, pos: len(s), next: len(s)} }

// Next returns the next (progressively shorter) prefix of the original text,
// and whether one remains.
func (s *Subtokens) Next() (string, bool) {
	for s.next > 0 {
		if isRuneBoundary(s.text, s.next) {
			prefix := s.text[:s.next]
			s.pos = s.next
			s.next--
			for s.next > 0 && !isRuneBoundary(s.text, s.next) {
				s.next--
			}
			return prefix, true
		}
		s.next--
	}
	return "", false
}

// Remainder returns the text following the most recently returned prefix.
func (s *Subtokens) Remainder() string { return s.text[s.pos:] }

func isRuneBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	return utf8.RuneStart(s[i])
}
