package app

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"arcstd/alg/transition"
	"arcstd/eval"
	"arcstd/nlp/format/conll"
	"arcstd/nlp/format/transitions"
	dep "arcstd/nlp/parser/dependency/transition"
	nlp "arcstd/nlp/types"
)

// OracleSummary counts sentences whose static oracle parse differs from the
// gold heads, which happens for non-projective trees.
type OracleSummary struct {
	Sentences  int
	Mismatched int
	Score      eval.Total
}

// OracleFiles runs the static oracle over gold conll and writes the
// transition sequence of every sentence.
func OracleFiles(inputFile, outputFile string, batch, limit int) (*OracleSummary, error) {
	rows, err := conll.ReadFile(inputFile, limit)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputFile, err)
	}
	sents := make([]nlp.Sentence, len(rows))
	heads := make([][]int, len(rows))
	for i, sent := range rows {
		sents[i] = sent.Tokens()
		heads[i] = sent.Heads()
	}
	recorder := dep.NewRecordingOracle(dep.NewStaticOracle(heads))
	parser := &dep.BatchParser{Oracle: recorder, BatchSize: batch}
	results, err := parser.ParseMany(sents)
	if err != nil {
		return nil, err
	}

	summary := &OracleSummary{Sentences: len(sents)}
	sequences := make([][]transition.Transition, len(sents))
	for i := range sents {
		sequences[i] = recorder.Sequence(i)
		result := eval.Heads(results[i].Heads(len(sents[i])), heads[i])
		summary.Score.Add(result)
		if result.Incorrect() > 0 {
			log.Printf("Sentence %d: oracle parse differs from gold in %d heads (non-projective?)", i, result.Incorrect())
			summary.Mismatched++
		}
	}
	if err := transitions.WriteFile(outputFile, sequences); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputFile, err)
	}
	return summary, nil
}

func OracleRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "ot"}); err != nil {
		return err
	}
	if allOut {
		log.Println("Data")
		log.Printf("Gold conll:\t%s", input)
		if !VerifyExists(input) {
			return fmt.Errorf("input %s not accessible", input)
		}
		log.Println()
	}
	summary, err := OracleFiles(input, outTrans, batchSize, limit)
	if err != nil {
		return err
	}
	color.Green("Wrote oracle transitions for %d sentences to %s", summary.Sentences, outTrans)
	if summary.Mismatched > 0 {
		color.Yellow("%d sentences could not be reproduced by the arc-standard oracle (UAS %.2f%%)",
			summary.Mismatched, 100*summary.Score.UAS())
	}
	return nil
}

func OracleCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       OracleRun,
		UsageLine: "oracle <file options> [arguments]",
		Short:     "writes static oracle transition sequences for gold trees",
		Long: `
writes the arc-standard static oracle transition sequence of every gold tree

	$ ./arcstd oracle -in <gold conll> -ot <out transitions> [-b <batch>]

`,
		Flag: *flag.NewFlagSet("oracle", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Gold Conll File")
	cmd.Flag.StringVar(&outTrans, "ot", "", "Output Transitions File")
	cmd.Flag.IntVar(&batchSize, "b", 64, "Batch size (0 = all sentences in one batch)")
	cmd.Flag.IntVar(&limit, "limit", 0, "limit number of input sentences")
	return cmd
}
