package manifest

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// Separator precedes each document of a list-shaped set.
const Separator = "---\n"

const indent = 2

// Render writes s to w as YAML. A single document is written without a
// separator; each document of a list is preceded by [Separator]. An empty
// set writes nothing.
func (s *DocumentSet) Render(w io.Writer) error {
	for _, doc := range s.docs {
		out, err := marshal(doc)
		if err != nil {
			return err
		}

		if s.list {
			out = append([]byte(Separator), out...)
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w: %w", kluarserrors.ErrWrite, err)
		}
	}

	return nil
}

func marshal(doc document.Value) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	if err := enc.Encode(doc.Node()); err != nil {
		return nil, fmt.Errorf("%w: %w", kluarserrors.ErrYAMLMarshal, err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", kluarserrors.ErrYAMLMarshal, err)
	}

	return buf.Bytes(), nil
}
