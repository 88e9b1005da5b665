package app

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"arcstd/nlp/format/raw"
	"arcstd/nlp/format/transitions"
	dep "arcstd/nlp/parser/dependency/transition"
	nlp "arcstd/nlp/types"
	"arcstd/util/conf"
)

// CheckResult is the outcome of replaying one transition sequence.
type CheckResult struct {
	Index    int
	Sentence nlp.Sentence
	Err      error
}

// CheckFiles replays every transition sequence on its sentence and reports
// the sequences that are illegal or leave the sentence unfinished.
func CheckFiles(runConf *conf.Conf, inputFile, transFile string) ([]CheckResult, int, error) {
	sents, _, err := ReadSentences(runConf, inputFile)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", inputFile, err)
	}
	seqs, err := transitions.ReadFile(transFile)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", transFile, err)
	}
	if len(seqs) != len(sents) {
		return nil, 0, fmt.Errorf("%d transition sequences for %d sentences", len(seqs), len(sents))
	}
	var failures []CheckResult
	for i, sent := range sents {
		state := dep.NewParseState(sent)
		if _, err := state.Parse(seqs[i]); err != nil {
			failures = append(failures, CheckResult{i, sent, err})
			continue
		}
		if !state.Terminal() {
			failures = append(failures, CheckResult{i, sent, fmt.Errorf("not terminal after %d transitions: %v", state.Len(), state)})
		}
	}
	return failures, len(sents), nil
}

// WriteFailures writes the sentences of failed sequences as raw text, so
// they can be inspected or re-scripted on their own.
func WriteFailures(filename string, failures []CheckResult) error {
	sents := make([]nlp.Sentence, len(failures))
	for i, failure := range failures {
		sents[i] = failure.Sentence
	}
	return raw.WriteFile(filename, sents)
}

func CheckRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "t"}); err != nil {
		return err
	}
	runConf, err := RunConf(cmd)
	if err != nil {
		return err
	}
	failures, total, err := CheckFiles(runConf, input, transFile)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		log.Printf("Sentence %d: %v", failure.Index, failure.Err)
	}
	if len(failures) > 0 && outFailed != "" {
		if err := WriteFailures(outFailed, failures); err != nil {
			return fmt.Errorf("writing %s: %w", outFailed, err)
		}
		log.Println("Wrote failed sentences to", outFailed)
	}
	if len(failures) > 0 {
		color.Red("%d of %d transition sequences are invalid", len(failures), total)
		return fmt.Errorf("%d invalid transition sequences", len(failures))
	}
	color.Green("All %d transition sequences are valid", total)
	return nil
}

func CheckCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       CheckRun,
		UsageLine: "check <file options> [arguments]",
		Short:     "validates transition sequences against their sentences",
		Long: `
validates that every transition sequence is legal and fully reduces its sentence

	$ ./arcstd check -in <input> -t <transitions> [-f conll|raw] [-of <failed raw>]

`,
		Flag: *flag.NewFlagSet("check", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Input sentences file")
	cmd.Flag.StringVar(&inputFormat, "f", conf.FORMAT_CONLL, "Input format [conll, raw]")
	cmd.Flag.StringVar(&transFile, "t", "", "Transition sequences file")
	cmd.Flag.StringVar(&outFailed, "of", "", "Optional - Output raw file of sentences whose sequences fail")
	cmd.Flag.IntVar(&limit, "limit", 0, "limit number of input sentences")
	return cmd
}
