// Package raw reads and writes raw format files: a token per line, with an
// empty line ending each sentence.
package raw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "arcstd/nlp/types"
)

// Read returns at most limit sentences (limit <= 0 reads all). A final
// sentence without a trailing empty line is kept.
func Read(reader io.Reader, limit int) ([]nlp.Sentence, error) {
	var (
		sentences   []nlp.Sentence
		currentSent = make(nlp.Sentence, 0, 10)
		inSent      bool
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// an empty line ends the current sentence
		if len(line) == 0 {
			sentences = append(sentences, currentSent)
			if limit > 0 && len(sentences) >= limit {
				return sentences, nil
			}
			currentSent = make(nlp.Sentence, 0, 10)
			inSent = false
			continue
		}
		currentSent = append(currentSent, line)
		inSent = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading raw sentences: %w", err)
	}
	if inSent {
		sentences = append(sentences, currentSent)
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) ([]nlp.Sentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file, limit)
}

func Write(writer io.Writer, sents []nlp.Sentence) error {
	bufWriter := bufio.NewWriter(writer)
	for _, sent := range sents {
		for _, token := range sent {
			bufWriter.WriteString(token)
			bufWriter.WriteByte('\n')
		}
		bufWriter.WriteByte('\n')
	}
	return bufWriter.Flush()
}

func WriteFile(filename string, sents []nlp.Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}
