// Package conll reads and writes CoNLL-X dependency files.
// For a description see http://ilk.uvt.nl/conll/#dataformat
package conll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	nlp "arcstd/nlp/types"
)

const (
	FIELD_SEPARATOR = '\t'
	NUM_FIELDS      = 10
	EMPTY_FIELD     = "_"
)

var ErrMalformedRow = errors.New("malformed conll row")

// A Row is a single line of a conll data set. Head is -1 when the HEAD
// field is empty.
type Row struct {
	ID      int
	Form    string
	Lemma   string
	CPosTag string
	PosTag  string
	FeatStr string
	Head    int
	DepRel  string
}

func field(value string) string {
	if value == "" {
		return EMPTY_FIELD
	}
	return value
}

func (r Row) String() string {
	head := EMPTY_FIELD
	if r.Head >= 0 {
		head = strconv.Itoa(r.Head)
	}
	fields := []string{
		strconv.Itoa(r.ID),
		r.Form,
		field(r.Lemma),
		field(r.CPosTag),
		field(r.PosTag),
		field(r.FeatStr),
		head,
		field(r.DepRel),
		EMPTY_FIELD,
		EMPTY_FIELD,
	}
	return strings.Join(fields, string(FIELD_SEPARATOR))
}

// A Sentence is the ordered list of its rows.
type Sentence []Row

type Sentences []Sentence

// Tokens returns the word forms of the sentence.
func (s Sentence) Tokens() nlp.Sentence {
	retval := make(nlp.Sentence, len(s))
	for i, row := range s {
		retval[i] = row.Form
	}
	return retval
}

// Heads returns the HEAD field of every row indexed by row position, with
// index 0 set to -1 for ROOT.
func (s Sentence) Heads() []int {
	heads := make([]int, len(s)+1)
	heads[0] = -1
	for i, row := range s {
		heads[i+1] = row.Head
	}
	return heads
}

func ParseInt(value string) (int, error) {
	if value == EMPTY_FIELD {
		return -1, nil
	}
	i, err := strconv.Atoi(value)
	return i, err
}

func ParseString(value string) string {
	if value == EMPTY_FIELD {
		return ""
	}
	return value
}

func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) < 8 {
		return row, fmt.Errorf("%w: %d fields, need at least 8", ErrMalformedRow, len(record))
	}
	id, err := strconv.Atoi(record[0])
	if err != nil {
		return row, fmt.Errorf("%w: ID field (%s): %v", ErrMalformedRow, record[0], err)
	}
	row.ID = id

	if record[1] == "" {
		return row, fmt.Errorf("%w: empty FORM field", ErrMalformedRow)
	}
	row.Form = record[1]
	row.Lemma = ParseString(record[2])
	row.CPosTag = ParseString(record[3])
	row.PosTag = ParseString(record[4])

	row.FeatStr = ParseString(record[5])

	head, err := ParseInt(record[6])
	if err != nil {
		return row, fmt.Errorf("%w: HEAD field (%s): %v", ErrMalformedRow, record[6], err)
	}
	row.Head = head
	row.DepRel = ParseString(record[7])
	return row, nil
}

// Read parses sentences separated by empty lines. Row IDs must run 1..N
// inside each sentence.
func Read(reader io.Reader, limit int) (Sentences, error) {
	var (
		sentences   Sentences
		currentSent Sentence
		lineNum     int
	)
	flush := func() {
		if currentSent != nil {
			sentences = append(sentences, currentSent)
			currentSent = nil
		}
	}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			flush()
			if limit > 0 && len(sentences) >= limit {
				return sentences, nil
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		row, err := ParseRow(strings.Split(line, string(FIELD_SEPARATOR)))
		if err != nil {
			return nil, fmt.Errorf("line %d, sentence %d: %w", lineNum, len(sentences), err)
		}
		if row.ID != len(currentSent)+1 {
			return nil, fmt.Errorf("line %d, sentence %d: %w: expected ID %d, got %d", lineNum, len(sentences), ErrMalformedRow, len(currentSent)+1, row.ID)
		}
		currentSent = append(currentSent, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading conll: %w", err)
	}
	flush()
	return sentences, nil
}

func ReadFile(filename string, limit int) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file, limit)
}

func Write(writer io.Writer, sents Sentences) error {
	bufWriter := bufio.NewWriter(writer)
	for _, sent := range sents {
		for _, row := range sent {
			bufWriter.WriteString(row.String())
			bufWriter.WriteByte('\n')
		}
		bufWriter.WriteByte('\n')
	}
	return bufWriter.Flush()
}

func WriteFile(filename string, sents Sentences) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}

// Arcs2Conll builds the rows of a parsed sentence. Tags and features are
// copied from base when it is given; HEAD comes from arcs, and tokens with
// no arc (a failed parse passes nil arcs) get an empty HEAD.
func Arcs2Conll(sent nlp.Sentence, arcs nlp.DepArcs, base Sentence) Sentence {
	heads := arcs.Heads(len(sent))
	retval := make(Sentence, len(sent))
	for i, form := range sent {
		var row Row
		if i < len(base) {
			row = base[i]
		}
		row.ID = i + 1
		row.Form = form
		row.Head = heads[i+1]
		row.DepRel = ""
		retval[i] = row
	}
	return retval
}
