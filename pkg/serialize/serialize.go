package serialize

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/cakeflow/cake/pkg/dst"
	"github.com/cakeflow/cake/pkg/registry"
	"github.com/cakeflow/cake/pkg/transform"
	"github.com/cakeflow/cake/pkg/value"
)

// Document is the portable, order-stable record of a Graph's structure.
type Document struct {
	Transforms []TransformRecord `toml:"transform"`
	Edges      []EdgeRecord      `toml:"edge"`
	Outputs    []OutputRecord    `toml:"output"`
}

// TransformRecord names one transform instance: either a Function
// reference resolved by name against a registry at import time, or a
// Constant with its output values inlined.
type TransformRecord struct {
	Idx      int             `toml:"idx"`
	Kind     string          `toml:"kind"`
	Name     string          `toml:"name"`
	Values   []ValueRecord   `toml:"values,omitempty"`
	Defaults []DefaultRecord `toml:"default,omitempty"`
}

// DefaultRecord overrides the default value of one declared input.
type DefaultRecord struct {
	Input int         `toml:"input"`
	Value ValueRecord `toml:"value"`
}

// ValueRecord is a tagged-union encoding of a value.Value.
type ValueRecord struct {
	Kind string  `toml:"kind"`
	Num  float64 `toml:"num,omitempty"`
	Str  string  `toml:"str,omitempty"`
	Bool bool    `toml:"bool,omitempty"`
}

// EdgeRecord names one producer-output-to-consumer-input connection.
type EdgeRecord struct {
	FromTransform int `toml:"from_transform"`
	FromOutput    int `toml:"from_output"`
	ToTransform   int `toml:"to_transform"`
	ToInput       int `toml:"to_input"`
}

// OutputRecord names one sink, optionally attached to a producer port.
type OutputRecord struct {
	ID        int  `toml:"id"`
	Attached  bool `toml:"attached"`
	Transform int  `toml:"transform,omitempty"`
	Output    int  `toml:"output,omitempty"`
}

const (
	kindFunction = "function"
	kindConstant = "constant"

	valueNumber = "number"
	valueString = "string"
	valueBool   = "bool"
)

// Export renders g as a Document, in ascending-id order throughout so that
// exporting an unchanged graph twice produces identical output.
func Export(g *dst.Graph) (*Document, error) {
	doc := &Document{}

	for _, idx := range g.TransformIds() {
		t, ok := g.Descriptor(idx)
		if !ok {
			continue
		}
		rec := TransformRecord{Idx: int(idx), Name: t.Name}
		if t.IsConstant() {
			rec.Kind = kindConstant
			caller := t.Start()
			results, err := caller.Call()
			if err != nil {
				return nil, fmt.Errorf("export: constant %d: %w", idx, err)
			}
			rec.Values = make([]ValueRecord, len(results))
			for i, r := range results {
				rec.Values[i] = encodeValue(r.Value)
			}
		} else {
			rec.Kind = kindFunction
		}

		values, has, err := g.GetDefaultInputs(idx)
		if err != nil {
			return nil, fmt.Errorf("export: defaults for %d: %w", idx, err)
		}
		for i, ok := range has {
			if ok {
				rec.Defaults = append(rec.Defaults, DefaultRecord{Input: i, Value: encodeValue(values[i])})
			}
		}

		doc.Transforms = append(doc.Transforms, rec)
	}

	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeRecord{
			FromTransform: int(e.Output.Transform),
			FromOutput:    e.Output.Output,
			ToTransform:   int(e.Input.Transform),
			ToInput:       e.Input.Input,
		})
	}

	for _, id := range g.OutputIds() {
		rec := OutputRecord{ID: int(id)}
		if o, ok := g.ResolveOutput(id); ok {
			rec.Attached = true
			rec.Transform = int(o.Transform)
			rec.Output = o.Output
		}
		doc.Outputs = append(doc.Outputs, rec)
	}

	return doc, nil
}

// Write renders doc as TOML to w.
func Write(doc *Document, w io.Writer) error {
	return toml.NewEncoder(w).Encode(doc)
}

// Read parses a TOML document from r. A key that matches no Document field
// is an error.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("serialize: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("serialize: decode: unknown fields %v", undecoded)
	}
	return &doc, nil
}

// Import rebuilds a Graph from doc, resolving Function records by name
// against reg. Constant values are taken from the document directly.
// Document transform indices need not be contiguous or match the indices
// the returned Graph mints; edges and outputs are translated through an
// internal idx map, so structural equality is what import preserves, not
// literal index values.
func Import(doc *Document, reg *registry.Registry) (*dst.Graph, error) {
	g := dst.New()
	idxMap := make(map[int]dst.TransformIdx, len(doc.Transforms))

	for _, rec := range doc.Transforms {
		var t *transform.Transform
		switch rec.Kind {
		case kindFunction:
			resolved, err := reg.Lookup(rec.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrUnresolvedTransform, rec.Name)
			}
			t = resolved
		case kindConstant:
			values := make([]value.Value, len(rec.Values))
			for i, vr := range rec.Values {
				v, err := decodeValue(vr)
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
			constant, err := transform.NewConstant(rec.Name, values)
			if err != nil {
				return nil, fmt.Errorf("serialize: constant %q: %w", rec.Name, err)
			}
			t = constant
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownTransformKind, rec.Kind)
		}

		idx := g.AddTransform(t)
		idxMap[rec.Idx] = idx

		for _, d := range rec.Defaults {
			v, err := decodeValue(d.Value)
			if err != nil {
				return nil, err
			}
			if err := g.WriteDefault(idx, d.Input, v); err != nil {
				return nil, fmt.Errorf("serialize: default for transform %d input %d: %w", rec.Idx, d.Input, err)
			}
		}
	}

	for _, e := range doc.Edges {
		from, ok := idxMap[e.FromTransform]
		if !ok {
			return nil, fmt.Errorf("%w: edge source %d", ErrDanglingReference, e.FromTransform)
		}
		to, ok := idxMap[e.ToTransform]
		if !ok {
			return nil, fmt.Errorf("%w: edge target %d", ErrDanglingReference, e.ToTransform)
		}
		o := dst.Output{Transform: from, Output: e.FromOutput}
		i := dst.Input{Transform: to, Input: e.ToInput}
		if err := g.Connect(o, i); err != nil {
			return nil, fmt.Errorf("serialize: import edge %+v -> %+v: %w", o, i, err)
		}
	}

	for _, rec := range doc.Outputs {
		id := g.CreateOutput()
		if !rec.Attached {
			continue
		}
		idx, ok := idxMap[rec.Transform]
		if !ok {
			return nil, fmt.Errorf("%w: output %d", ErrDanglingReference, rec.ID)
		}
		if err := g.AttachOutput(id, dst.Output{Transform: idx, Output: rec.Output}); err != nil {
			return nil, fmt.Errorf("serialize: attach output %d: %w", rec.ID, err)
		}
	}

	return g, nil
}

func encodeValue(v value.Value) ValueRecord {
	switch {
	case v.Type().Equals(value.Number):
		return ValueRecord{Kind: valueNumber, Num: value.Float64(v)}
	case v.Type().Equals(value.String):
		return ValueRecord{Kind: valueString, Str: value.String_(v)}
	case v.Type().Equals(value.Bool):
		return ValueRecord{Kind: valueBool, Bool: value.Bool_(v)}
	default:
		return ValueRecord{Kind: value.Describe(v)}
	}
}

func decodeValue(r ValueRecord) (value.Value, error) {
	switch r.Kind {
	case valueNumber:
		return value.NewNumber(r.Num), nil
	case valueString:
		return value.NewString(r.Str), nil
	case valueBool:
		return value.NewBool(r.Bool), nil
	default:
		return value.Value{}, fmt.Errorf("%w: %s", ErrUnknownValueKind, r.Kind)
	}
}
