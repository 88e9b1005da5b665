package app

import (
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"arcstd/eval"
	"arcstd/nlp/format/conll"
	"arcstd/nlp/format/transitions"
	dep "arcstd/nlp/parser/dependency/transition"
	"arcstd/util/conf"
)

// ParseSummary describes a finished parse run.
type ParseSummary struct {
	Sentences int
	Failed    int
	Rounds    int
	Elapsed   time.Duration

	// Score compares against the heads of conll input; Scored is false
	// when the input carries no heads.
	Score  eval.Total
	Scored bool
}

// Oracle builds the oracle the configuration asks for. Static oracles take
// their gold heads from the conll rows.
func Oracle(runConf *conf.Conf, rows conll.Sentences, transFile string) (dep.Oracle, error) {
	switch runConf.Oracle {
	case conf.ORACLE_SEQUENCE:
		if transFile == "" {
			return nil, errNoTransitions
		}
		seqs, err := transitions.ReadFile(transFile)
		if err != nil {
			return nil, fmt.Errorf("reading transitions %s: %w", transFile, err)
		}
		return &dep.SequenceOracle{Sequences: seqs}, nil
	case conf.ORACLE_STATIC:
		if rows == nil {
			return nil, fmt.Errorf("static oracle needs conll input")
		}
		heads := make([][]int, len(rows))
		for i, sent := range rows {
			heads[i] = sent.Heads()
			if len(sent) > 0 && !hasHeads(heads[i]) {
				return nil, fmt.Errorf("static oracle: sentence %d: %w (use -t for unannotated input)", i, dep.ErrNoGoldHeads)
			}
		}
		return dep.NewStaticOracle(heads), nil
	default:
		return nil, fmt.Errorf("unknown oracle %q", runConf.Oracle)
	}
}

// ParseFiles parses the input file and writes the arcs as conll. Sentences
// that fail are logged and written without heads.
func ParseFiles(runConf *conf.Conf, inputFile, transFile, outputFile string) (*ParseSummary, error) {
	sents, rows, err := ReadSentences(runConf, inputFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputFile, err)
	}
	oracle, err := Oracle(runConf, rows, transFile)
	if err != nil {
		return nil, err
	}
	parser := &dep.BatchParser{
		Oracle:     oracle,
		BatchSize:  runConf.BatchSize,
		Concurrent: runConf.Concurrent,
		Log:        runConf.Log,
	}
	start := time.Now()
	results, err := parser.ParseMany(sents)
	if results == nil && err != nil {
		return nil, err
	}
	summary := &ParseSummary{
		Sentences: len(sents),
		Rounds:    parser.Rounds,
		Elapsed:   time.Since(start),
	}
	for _, sentErr := range sentenceErrors(err) {
		log.Println("Parse failed:", sentErr)
		summary.Failed++
	}

	output := make(conll.Sentences, len(sents))
	for i, sent := range sents {
		var base conll.Sentence
		if rows != nil {
			base = rows[i]
			if gold := base.Heads(); hasHeads(gold) {
				summary.Score.Add(eval.Heads(results[i].Heads(len(sent)), gold))
				summary.Scored = true
			}
		}
		output[i] = conll.Arcs2Conll(sent, results[i], base)
	}
	if err := conll.WriteFile(outputFile, output); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputFile, err)
	}
	return summary, nil
}

func hasHeads(heads []int) bool {
	for _, head := range heads[1:] {
		if head < 0 {
			return false
		}
	}
	return len(heads) > 1
}

func ParseRun(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "oc"}); err != nil {
		return err
	}
	runConf, err := RunConf(cmd)
	if err != nil {
		return err
	}
	if allOut {
		files := map[string]string{"Input": input, "Transitions": transFile, "Config": confFile}
		if err := ConfigOut(runConf, files, []string{"Input", "Transitions", "Config"}); err != nil {
			return err
		}
	}
	summary, err := ParseFiles(runConf, input, transFile, outConll)
	if err != nil {
		return err
	}
	color.Green("Parsed %d sentences in %d oracle rounds (%v)", summary.Sentences, summary.Rounds, summary.Elapsed)
	if summary.Scored {
		log.Printf("UAS:		%.2f%%", 100*summary.Score.UAS())
		log.Printf("Exact match:	%.2f%%", 100*summary.Score.ExactMatch())
	}
	if summary.Failed > 0 {
		color.Yellow("%d sentences failed, written without heads", summary.Failed)
	}
	log.Println("Wrote", outConll)
	return nil
}

func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ParseRun,
		UsageLine: "parse <file options> [arguments]",
		Short:     "runs minibatch arc-standard parsing",
		Long: `
runs minibatch arc-standard parsing driven by an oracle

	$ ./arcstd parse -in <input> -oc <out conll> [-f conll|raw] [-t <transitions>] [-b <batch>] [options]

Without -t the static oracle replays the gold heads of a conll input.
`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Input sentences file")
	cmd.Flag.StringVar(&inputFormat, "f", conf.FORMAT_CONLL, "Input format [conll, raw]")
	cmd.Flag.StringVar(&transFile, "t", "", "Optional - Transition sequences file (one sentence per line)")
	cmd.Flag.StringVar(&outConll, "oc", "", "Output Conll File")
	cmd.Flag.StringVar(&confFile, "conf", "", "Optional - YAML run configuration")
	cmd.Flag.IntVar(&batchSize, "b", 64, "Batch size (0 = all sentences in one batch)")
	cmd.Flag.BoolVar(&concurrent, "conc", false, "Apply each round's transitions concurrently")
	cmd.Flag.IntVar(&limit, "limit", 0, "limit number of input sentences")
	cmd.Flag.BoolVar(&logRounds, "log", false, "Log every oracle round")
	return cmd
}
