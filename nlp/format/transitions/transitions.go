// Package transitions reads and writes transition sequence files: one
// sentence per line, transition names separated by whitespace. An empty
// line is the (empty) sequence of an empty sentence.
package transitions

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"arcstd/alg/transition"
)

func Read(reader io.Reader) ([][]transition.Transition, error) {
	var sequences [][]transition.Transition
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		seq, err := transition.ParseSequence(strings.TrimRight(scanner.Text(), "\r"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		sequences = append(sequences, seq)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transitions: %w", err)
	}
	return sequences, nil
}

func ReadFile(filename string) ([][]transition.Transition, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

func Write(writer io.Writer, sequences [][]transition.Transition) error {
	bufWriter := bufio.NewWriter(writer)
	for _, seq := range sequences {
		bufWriter.WriteString(transition.FormatSequence(seq))
		bufWriter.WriteByte('\n')
	}
	return bufWriter.Flush()
}

func WriteFile(filename string, sequences [][]transition.Transition) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sequences)
}
