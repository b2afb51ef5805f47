// Package design holds the canonical treatment sequence sessions are
// expected to follow.
package design

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/bargain-cli/internal/model"
)

const (
	// Treatments is the number of experimental conditions.
	Treatments = 12
	// DefaultBlockSize is how many consecutive rows share a treatment.
	DefaultBlockSize = 4
)

// Sequence is an ordered treatment design.
type Sequence struct {
	BlockSize  int               `yaml:"block_size"`
	Treatments []model.Treatment `yaml:"treatments"`
}

// Default returns the design the sessions were run with.
func Default() Sequence {
	c, b, a := model.ClassC, model.ClassB, model.ClassA
	sup, ret := model.RoleSupplier, model.RoleRetailer
	ai, human := model.BaselineAI, model.BaselineHuman

	return newSequence(DefaultBlockSize, []model.Treatment{
		{Class: c, FirstMover: sup, Baseline: ai},
		{Class: c, FirstMover: sup, Baseline: human},
		{Class: b, FirstMover: ret, Baseline: ai},
		{Class: b, FirstMover: ret, Baseline: human},
		{Class: a, FirstMover: sup, Baseline: ai},
		{Class: a, FirstMover: sup, Baseline: human},
		{Class: c, FirstMover: ret, Baseline: ai},
		{Class: c, FirstMover: ret, Baseline: human},
		{Class: b, FirstMover: sup, Baseline: ai},
		{Class: b, FirstMover: sup, Baseline: human},
		{Class: a, FirstMover: ret, Baseline: ai},
		{Class: a, FirstMover: ret, Baseline: human},
	})
}

// newSequence numbers unnumbered entries by position. Explicit numbers
// are kept so Validate can reject a misnumbered design.
func newSequence(blockSize int, ts []model.Treatment) Sequence {
	for i := range ts {
		if ts[i].Number == 0 {
			ts[i].Number = i + 1
		}
	}
	return Sequence{BlockSize: blockSize, Treatments: ts}
}

// Load reads a YAML design file. A zero block_size means the default.
func Load(path string) (Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sequence{}, eris.Wrapf(err, "design: read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML design.
func Parse(data []byte) (Sequence, error) {
	var raw Sequence
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Sequence{}, eris.Wrap(err, "design: parse yaml")
	}
	if raw.BlockSize == 0 {
		raw.BlockSize = DefaultBlockSize
	}
	seq := newSequence(raw.BlockSize, raw.Treatments)
	if err := seq.Validate(); err != nil {
		return Sequence{}, err
	}
	return seq, nil
}

// Validate checks that the sequence covers every class, first mover and
// baseline combination exactly once.
func (s Sequence) Validate() error {
	if s.BlockSize < 1 {
		return eris.Errorf("design: block size must be positive, got %d", s.BlockSize)
	}
	if len(s.Treatments) != Treatments {
		return eris.Errorf("design: expected %d treatments, got %d", Treatments, len(s.Treatments))
	}
	seen := make(map[string]int, Treatments)
	for i, t := range s.Treatments {
		if t.Number != i+1 {
			return eris.Errorf("design: treatment %d is numbered %d", i+1, t.Number)
		}
		if _, err := model.ParseClass(string(t.Class)); err != nil {
			return eris.Wrapf(err, "design: treatment %d", t.Number)
		}
		if _, ok := model.ParseRole(string(t.FirstMover)); !ok {
			return eris.Errorf("design: treatment %d has unknown first mover %q", t.Number, t.FirstMover)
		}
		if _, err := model.ParseBaseline(string(t.Baseline)); err != nil {
			return eris.Wrapf(err, "design: treatment %d", t.Number)
		}
		if prev, ok := seen[t.Key()]; ok {
			return eris.Errorf("design: treatments %d and %d are both %s", prev, t.Number, t.Key())
		}
		seen[t.Key()] = t.Number
	}
	return nil
}

// Index returns the 1-based treatment number expected at a zero-based
// row position.
func (s Sequence) Index(pos int) int {
	return (pos/s.BlockSize)%len(s.Treatments) + 1
}

// At returns the treatment expected at a zero-based row position.
func (s Sequence) At(pos int) model.Treatment {
	return s.Treatments[s.Index(pos)-1]
}

// Names returns the formatted treatment labels in order.
func (s Sequence) Names() []string {
	names := make([]string, len(s.Treatments))
	for i, t := range s.Treatments {
		names[i] = t.String()
	}
	return names
}

// Marshal encodes the sequence as YAML in the format Load reads.
func (s Sequence) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, eris.Wrap(err, "design: marshal yaml")
	}
	return out, nil
}
