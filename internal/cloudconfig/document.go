package cloudconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when a document is not a mapping of
// directive names to payloads.
var ErrInvalidDocument = errors.New("invalid cloud-config document")

// Directive is one named unit of provisioning work.
type Directive struct {
	Name    string
	Payload any
	// Index is the position of the directive in the document.
	Index int
}

// ParseDocument reads a cloud-config document. The top level must be a
// mapping; keys keep document order. An empty document has no directives.
func ParseDocument(r io.Reader) ([]Directive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, fmt.Errorf("%w: expected a single document in the stream", ErrInvalidDocument)
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		doc = doc.Content[0]
	}

	switch {
	case doc.Kind == 0:
		return nil, nil
	case doc.Kind == yaml.ScalarNode && doc.Tag == "!!null":
		return nil, nil
	case doc.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: top level must be a mapping, got %s", ErrInvalidDocument, nodeKind(doc))
	}

	directives := make([]Directive, 0, len(doc.Content)/2)
	seen := make(map[string]int, len(doc.Content)/2)

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]

		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("%w: line %d: directive name must be a non-empty string", ErrInvalidDocument, key.Line)
		}
		if key.ShortTag() == "!!merge" {
			return nil, fmt.Errorf("%w: line %d: merge keys are not allowed at the top level", ErrInvalidDocument, key.Line)
		}
		if line, dup := seen[key.Value]; dup {
			return nil, fmt.Errorf("%w: line %d: directive %q already defined on line %d",
				ErrInvalidDocument, key.Line, key.Value, line)
		}
		seen[key.Value] = key.Line

		var payload any
		if err := value.Decode(&payload); err != nil {
			return nil, fmt.Errorf("%w: directive %q: %v", ErrInvalidDocument, key.Value, err)
		}

		directives = append(directives, Directive{
			Name:    key.Value,
			Payload: payload,
			Index:   len(directives),
		})
	}

	return directives, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("node kind %d", n.Kind)
	}
}
