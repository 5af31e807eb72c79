package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Separator joins successive documents in an encoded stream.
const Separator = "\n---\n"

// ErrMissingField marks a document that lacks one of the required keys.
var ErrMissingField = errors.New("missing field")

// ErrNotMapping marks a document whose root is not a key/value mapping.
var ErrNotMapping = errors.New("document is not a mapping")

// ErrEmptyDocument marks a blank or null document in the middle of a stream.
var ErrEmptyDocument = errors.New("empty document")

// Decode reads every document in r into a T, in stream order. Every document
// must decode; a blank or null one is an error. The only exception is a blank
// final document left by a trailing "---", which is ignored.
func Decode[T any](r io.Reader, required []string) ([]T, error) {
	decoder := yaml.NewDecoder(r)
	var records []T
	trailing := 0
	for index := 1; ; index++ {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document %d: %w", index, err)
		}
		if trailing > 0 {
			return nil, fmt.Errorf("decode document %d: %w", trailing, ErrEmptyDocument)
		}
		root := documentRoot(&node)
		if isNull(root) {
			if isBlank(root) {
				trailing = index
				continue
			}
			return nil, fmt.Errorf("decode document %d: %w", index, ErrEmptyDocument)
		}
		if root.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("decode document %d: %w", index, ErrNotMapping)
		}
		if err := requireKeys(root, required); err != nil {
			return nil, fmt.Errorf("decode document %d: %w", index, err)
		}
		var record T
		if err := root.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode document %d: %w", index, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Encode serializes records as one document each, joined by Separator. No
// records produce empty output.
func Encode[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	for i := range records {
		data, err := yaml.Marshal(&records[i])
		if err != nil {
			return nil, fmt.Errorf("encode document %d: %w", i+1, err)
		}
		if i > 0 {
			buf.WriteString(Separator)
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// documentRoot returns the content node of a document, or nil when the
// document has no content at all.
func documentRoot(node *yaml.Node) *yaml.Node {
	if node.Kind != yaml.DocumentNode {
		return node
	}
	if len(node.Content) == 0 {
		return nil
	}
	return node.Content[0]
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// isBlank reports a null with no text, as opposed to an explicit ~ or null.
func isBlank(node *yaml.Node) bool {
	return node == nil || (node.Value == "" && node.Style == 0)
}

func requireKeys(mapping *yaml.Node, required []string) error {
	if len(required) == 0 {
		return nil
	}
	present := make(map[string]struct{}, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		present[mapping.Content[i].Value] = struct{}{}
	}
	var missing []error
	for _, key := range required {
		if _, ok := present[key]; !ok {
			missing = append(missing, fmt.Errorf("%w %q", ErrMissingField, key))
		}
	}
	return errors.Join(missing...)
}
