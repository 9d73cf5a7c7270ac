package lexer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lexer_Next(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []string
	}{
		{"empty", "", nil},
		{"single word", "foo", []string{"foo"}},
		{"leading and trailing space", "  foo  ", []string{"foo"}},
		{"several words", "foo bar baz", []string{"foo", "bar", "baz"}},
		{"newlines count as space", "foo\nbar\n\nbaz", []string{"foo", "bar", "baz"}},
		{"punctuation as separate words", ": foo ;", []string{":", "foo", ";"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lx := New()
			lx.PushSourceBlock(tc.name, strings.NewReader(tc.src))

			var got []string
			for {
				tok, err := lx.Next()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				got = append(got, tok.Text)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_Lexer_Position(t *testing.T) {
	lx := New()
	lx.PushSourceBlock("f", strings.NewReader("foo\nbar baz"))

	tok, err := lx.Next()
	require.NoError(t, err)
	assert.Equal(t, "foo", tok.Text)
	assert.Equal(t, Position{Name: "f", Line: 1, Col: 0}, tok.Pos)

	tok, err = lx.Next()
	require.NoError(t, err)
	assert.Equal(t, "bar", tok.Text)
	assert.Equal(t, Position{Name: "f", Line: 2, Col: 0}, tok.Pos)

	tok, err = lx.Next()
	require.NoError(t, err)
	assert.Equal(t, "baz", tok.Text)
}

func Test_Lexer_PushSourceBlock_nesting(t *testing.T) {
	lx := New()
	lx.PushSourceBlock("outer", strings.NewReader("a b"))

	tok, err := lx.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Text)

	lx.PushSourceBlock("inner", strings.NewReader("x y"))
	assert.Equal(t, 2, lx.Depth())

	var got []string
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, tok.Text)
	}
	assert.Equal(t, []string{"x", "y", "b"}, got)
	assert.Equal(t, 0, lx.Depth())
}

func Test_Lexer_ScanUntil(t *testing.T) {
	lx := New()
	lx.PushSourceBlock("f", strings.NewReader(`hello world" after`))
	s, err := lx.ScanUntil('"')
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)

	tok, err := lx.Next()
	require.NoError(t, err)
	assert.Equal(t, "after", tok.Text)
}

func Test_Position_String(t *testing.T) {
	assert.Equal(t, "3:4", Position{Line: 3, Col: 4}.String())
	assert.Equal(t, "foo.fs:3:4", Position{Name: "foo.fs", Line: 3, Col: 4}.String())
}

func Test_Subtokens(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single rune", "a", []string{"a"}},
		{"ascii word", "abc", []string{"abc", "ab", "a"}},
		{"multi-byte rune boundary", "aé", []string{"aé", "a"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			st := NewSubtokens(tc.text)
			var got []string
			for {
				prefix, ok := st.Next()
				if !ok {
					break
				}
				got = append(got, prefix)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_Subtokens_Remainder(t *testing.T) {
	st := NewSubtokens("foo!")
	prefix, ok := st.Next()
	require.True(t, ok)
	assert.Equal(t, "foo!", prefix)
	assert.Equal(t, "", st.Remainder(), "full-length prefix leaves nothing remaining")

	prefix, ok = st.Next()
	require.True(t, ok)
	assert.Equal(t, "foo", prefix)
	assert.Equal(t, "!", st.Remainder())

	prefix, ok = st.Next()
	require.True(t, ok)
	assert.Equal(t, "fo", prefix)
	assert.Equal(t, "o!", st.Remainder())
}
