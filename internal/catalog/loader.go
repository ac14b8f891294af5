package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Load reads the catalog at path. displayPath is used in diagnostics.
func Load(path, displayPath string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog %q: %w", displayPath, err)
	}
	defer f.Close()
	return Decode(f, displayPath)
}

// Decode parses a catalog document. Either the full catalog is returned or a
// *MalformedError naming the first offending field; nothing partial escapes.
func Decode(r io.Reader, displayPath string) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, &MalformedError{File: displayPath, Reason: "document is empty"}
		}
		return Catalog{}, &MalformedError{File: displayPath, Reason: fmt.Sprintf("parse yaml: %v", err)}
	}

	d := decoder{file: displayPath}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Catalog{}, d.fail("", &extra, "multiple documents; the catalog must be a single YAML document")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Catalog{}, d.fail("", root, "document is empty")
		}
		root = resolve(root.Content[0])
	}
	return d.catalog(root)
}

type decoder struct {
	file string
}

func (d decoder) fail(path string, n *yaml.Node, format string, args ...any) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &MalformedError{File: d.file, Path: path, Line: line, Reason: fmt.Sprintf(format, args...)}
}

func (d decoder) catalog(root *yaml.Node) (Catalog, error) {
	if root.Kind != yaml.MappingNode {
		return Catalog{}, d.fail("", root, "top level must be a mapping")
	}

	version, err := d.requiredString(root, KeyVersion, KeyVersion)
	if err != nil {
		return Catalog{}, err
	}

	with, err := d.collection(root, KeyWithAlternatives, true)
	if err != nil {
		return Catalog{}, err
	}
	without, err := d.collection(root, KeyWithoutAlternatives, false)
	if err != nil {
		return Catalog{}, err
	}

	if err := d.checkExclusive(root, with, without); err != nil {
		return Catalog{}, err
	}

	return Catalog{
		Version:             version,
		WithAlternatives:    with,
		WithoutAlternatives: without,
	}, nil
}

// collection decodes one operation sequence. Operations with alternatives must
// carry a category and at least one step.
func (d decoder) collection(root *yaml.Node, key string, withAlternatives bool) ([]Operation, error) {
	seq := lookup(root, key)
	if isNull(seq) {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, d.fail(key, seq, "must be a sequence")
	}

	ops := make([]Operation, 0, len(seq.Content))
	for idx, item := range seq.Content {
		path := fmt.Sprintf("%s[%d]", key, idx)
		op, err := d.operation(resolve(item), path, withAlternatives)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (d decoder) operation(n *yaml.Node, path string, withAlternatives bool) (Operation, error) {
	if n.Kind != yaml.MappingNode {
		return Operation{}, d.fail(path, n, "operation must be a mapping")
	}

	name, err := d.requiredString(n, "name", path+".name")
	if err != nil {
		return Operation{}, err
	}

	var category string
	if withAlternatives {
		category, err = d.requiredString(n, "category", path+".category")
	} else {
		category, err = d.optionalString(n, "category", path+".category")
	}
	if err != nil {
		return Operation{}, err
	}

	steps, err := d.steps(n, path+".steps", withAlternatives)
	if err != nil {
		return Operation{}, err
	}

	return Operation{Name: name, Category: category, Steps: steps}, nil
}

func (d decoder) steps(op *yaml.Node, path string, required bool) ([]Step, error) {
	seq := lookup(op, "steps")
	if isNull(seq) {
		if required {
			return nil, d.fail(path, op, "missing required field")
		}
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, d.fail(path, seq, "must be a sequence")
	}
	if required && len(seq.Content) == 0 {
		return nil, d.fail(path, seq, "must contain at least one step")
	}

	steps := make([]Step, 0, len(seq.Content))
	for idx, item := range seq.Content {
		stepPath := fmt.Sprintf("%s[%d]", path, idx)
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			return nil, d.fail(stepPath, item, "step must be a mapping")
		}
		desc, err := d.requiredString(item, "description", stepPath+".description")
		if err != nil {
			return nil, err
		}
		safe, err := d.requiredBool(item, "can_run_in_transaction", stepPath+".can_run_in_transaction")
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Description: desc, CanRunInTransaction: safe})
	}
	return steps, nil
}

// checkExclusive rejects operation names listed in both collections.
func (d decoder) checkExclusive(root *yaml.Node, with, without []Operation) error {
	if len(with) == 0 || len(without) == 0 {
		return nil
	}
	index := make(map[string]int, len(with))
	for idx, op := range with {
		if _, ok := index[op.Name]; !ok {
			index[op.Name] = idx
		}
	}
	seq := lookup(root, KeyWithoutAlternatives)
	for idx, op := range without {
		if other, ok := index[op.Name]; ok {
			path := fmt.Sprintf("%s[%d].name", KeyWithoutAlternatives, idx)
			return d.fail(path, resolve(seq.Content[idx]), "operation %q is also listed as %s[%d]", op.Name, KeyWithAlternatives, other)
		}
	}
	return nil
}

func (d decoder) requiredString(m *yaml.Node, key, path string) (string, error) {
	v := lookup(m, key)
	if isNull(v) {
		return "", d.fail(path, m, "missing required field")
	}
	if v.Kind != yaml.ScalarNode {
		return "", d.fail(path, v, "must be a scalar value")
	}
	s := clean(v.Value)
	if s == "" {
		return "", d.fail(path, v, "must not be empty")
	}
	return s, nil
}

func (d decoder) optionalString(m *yaml.Node, key, path string) (string, error) {
	v := lookup(m, key)
	if isNull(v) {
		return "", nil
	}
	if v.Kind != yaml.ScalarNode {
		return "", d.fail(path, v, "must be a scalar value")
	}
	return clean(v.Value), nil
}

func (d decoder) requiredBool(m *yaml.Node, key, path string) (bool, error) {
	v := lookup(m, key)
	if isNull(v) {
		return false, d.fail(path, m, "missing required field")
	}
	if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!bool" {
		return false, d.fail(path, v, "must be a boolean, got %q", v.Value)
	}
	var b bool
	if err := v.Decode(&b); err != nil {
		return false, d.fail(path, v, "must be a boolean: %v", err)
	}
	return b, nil
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// clean trims and NFC-normalises catalog text so equal names compare equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
