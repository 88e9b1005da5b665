package transition

import (
	"fmt"
	"strings"

	"arcstd/util"
)

// Transition is an arc-standard action. It carries no payload; the
// configuration decides which stack and buffer elements it touches.
type Transition int

const (
	SHIFT Transition = iota
	LEFT
	RIGHT
)

var shortNames = [...]string{"S", "LA", "RA"}

// ETrans maps the short transition names to their value.
var ETrans = util.NewEnumSet(len(shortNames))

func init() {
	for _, name := range shortNames {
		if _, _, err := ETrans.Add(name); err != nil {
			panic(err)
		}
	}
	ETrans.Frozen = true
}

var aliases = map[string]Transition{
	"SH":        SHIFT,
	"SHIFT":     SHIFT,
	"LEFT-ARC":  LEFT,
	"LEFT":      LEFT,
	"RIGHT-ARC": RIGHT,
	"RIGHT":     RIGHT,
}

func (t Transition) Valid() bool {
	return t >= SHIFT && t <= RIGHT
}

func (t Transition) String() string {
	if name, exists := ETrans.ValueOf(int(t)); exists {
		return name.(string)
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

// Parse accepts the short names (S, LA, RA) and the long aliases,
// case-insensitively.
func Parse(name string) (Transition, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if index, exists := ETrans.IndexOf(upper); exists {
		return Transition(index), nil
	}
	if t, exists := aliases[upper]; exists {
		return t, nil
	}
	return 0, fmt.Errorf("unknown transition %q", name)
}

// ParseSequence parses whitespace separated transition names.
func ParseSequence(line string) ([]Transition, error) {
	fields := strings.Fields(line)
	retval := make([]Transition, 0, len(fields))
	for i, field := range fields {
		t, err := Parse(field)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		retval = append(retval, t)
	}
	return retval, nil
}

func FormatSequence(seq []Transition) string {
	names := make([]string, len(seq))
	for i, t := range seq {
		names[i] = t.String()
	}
	return strings.Join(names, " ")
}

func (t Transition) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid transition %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Transition) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
