package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"arcstd/nlp/format/conll"
	"arcstd/nlp/format/raw"
	nlp "arcstd/nlp/types"
	"arcstd/util"
	"arcstd/util/conf"
)

var (
	allOut bool = true

	// file names
	input     string
	transFile string
	outConll  string
	outTrans  string
	outFailed string
	confFile  string

	// processing options
	inputFormat string
	batchSize   int
	limit       int
	concurrent  bool
	logRounds   bool
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", name)
		}
	}
	return nil
}

// RunConf layers the flags given on the command line over the -conf file,
// or over the defaults when there is no file.
func RunConf(cmd *commander.Command) (*conf.Conf, error) {
	runConf := conf.Default()
	if confFile != "" {
		var err error
		if runConf, err = conf.ReadFile(confFile); err != nil {
			return nil, fmt.Errorf("reading configuration %s: %w", confFile, err)
		}
	}
	cmd.Flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "b":
			runConf.BatchSize = batchSize
		case "conc":
			runConf.Concurrent = concurrent
		case "f":
			runConf.Format = inputFormat
		case "limit":
			runConf.Limit = limit
		case "log":
			runConf.Log = logRounds
		}
	})
	if transFile != "" {
		runConf.Oracle = conf.ORACLE_SEQUENCE
	}
	if err := runConf.Validate(); err != nil {
		return nil, err
	}
	return runConf, nil
}

func ConfigOut(runConf *conf.Conf, files map[string]string, order []string) error {
	log.Println("Configuration")
	for _, line := range strings.Split(strings.TrimSpace(runConf.String()), "\n") {
		log.Println(line)
	}
	log.Println()
	log.Println("Data")
	for _, name := range order {
		filename := files[name]
		if filename == "" {
			continue
		}
		log.Printf("%s:\t%s", name, filename)
		if !VerifyExists(filename) {
			return fmt.Errorf("%s %s not accessible", name, filename)
		}
		if digest, err := util.DigestFile(filename); err == nil {
			log.Printf("%s sha256:\t%s", name, digest)
		}
	}
	log.Println()
	return nil
}

// ReadSentences reads the input in the configured format. The conll rows
// are returned too (nil for raw input) so output can keep their tags.
func ReadSentences(runConf *conf.Conf, filename string) ([]nlp.Sentence, conll.Sentences, error) {
	switch runConf.Format {
	case conf.FORMAT_RAW:
		sents, err := raw.ReadFile(filename, runConf.Limit)
		return sents, nil, err
	case conf.FORMAT_CONLL:
		rows, err := conll.ReadFile(filename, runConf.Limit)
		if err != nil {
			return nil, nil, err
		}
		sents := make([]nlp.Sentence, len(rows))
		for i, sent := range rows {
			sents[i] = sent.Tokens()
		}
		return sents, rows, nil
	default:
		return nil, nil, fmt.Errorf("unknown input format %q", runConf.Format)
	}
}

// sentenceErrors splits a ParseMany error into its per-sentence parts.
func sentenceErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

var errNoTransitions = errors.New("sequence oracle needs a transitions file (-t)")
