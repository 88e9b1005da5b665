package types

import "slices"

const (
	ROOT_TOKEN = "ROOT"
	ROOT_ID    = 0
)

// Token is a word at a sentence position. Identity is the position: two
// tokens with the same Form at different IDs are different tokens.
type Token struct {
	ID   int
	Form string
}

var Root = Token{ID: ROOT_ID, Form: ROOT_TOKEN}

func (t Token) IsRoot() bool {
	return t.ID == ROOT_ID
}

func (t Token) String() string {
	return t.Form
}

func (t Token) Equal(other Token) bool {
	return t.ID == other.ID
}

// Sentence is the ordered list of token forms. IDs are 1-based positions.
type Sentence []string

func (s Sentence) Len() int {
	return len(s)
}

func (s Sentence) Tokens() []Token {
	retval := make([]Token, len(s))
	for i, form := range s {
		retval[i] = Token{ID: i + 1, Form: form}
	}
	return retval
}

// Token returns the token at position id, ROOT for 0.
func (s Sentence) Token(id int) (Token, bool) {
	if id == ROOT_ID {
		return Root, true
	}
	if id < 1 || id > len(s) {
		return Token{}, false
	}
	return Token{ID: id, Form: s[id-1]}, true
}

func (s Sentence) Equal(other Sentence) bool {
	return slices.Equal(s, other)
}

func (s Sentence) Copy() Sentence {
	return slices.Clone(s)
}
