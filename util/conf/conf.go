// Package conf loads run configuration files.
package conf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ORACLE_STATIC   = "static"
	ORACLE_SEQUENCE = "sequence"

	FORMAT_RAW   = "raw"
	FORMAT_CONLL = "conll"
)

// Conf holds the settings of a parse run. Zero values mean "not set" so
// a file can be layered under command line flags.
type Conf struct {
	BatchSize  int    `yaml:"batch"`
	Concurrent bool   `yaml:"concurrent"`
	Oracle     string `yaml:"oracle"`
	Format     string `yaml:"format"`
	Limit      int    `yaml:"limit"`
	Log        bool   `yaml:"log"`
}

func Default() *Conf {
	return &Conf{
		BatchSize: 64,
		Format:    FORMAT_CONLL,
		Oracle:    ORACLE_STATIC,
	}
}

func Read(reader io.Reader) (*Conf, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	c := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

func (c *Conf) Validate() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("batch must be >= 0, got %d", c.BatchSize)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", c.Limit)
	}
	switch c.Oracle {
	case ORACLE_STATIC, ORACLE_SEQUENCE:
	default:
		return fmt.Errorf("unknown oracle %q (want %s or %s)", c.Oracle, ORACLE_STATIC, ORACLE_SEQUENCE)
	}
	switch c.Format {
	case FORMAT_RAW, FORMAT_CONLL:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FORMAT_RAW, FORMAT_CONLL)
	}
	if c.Format == FORMAT_RAW && c.Oracle == ORACLE_STATIC {
		return errors.New("the static oracle needs gold heads, use conll input")
	}
	return nil
}

func (c *Conf) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(out)
}
