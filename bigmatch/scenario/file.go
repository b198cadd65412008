package scenario

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Outcome is the observable result of running a case.
type Outcome string

const (
	// OutcomePass means the matcher returned nil.
	OutcomePass Outcome = "pass"
	// OutcomeFail means the matcher returned an assertion failure.
	OutcomeFail Outcome = "fail"
	// OutcomeError means the matcher returned any other error, such as a
	// normalization or configuration error.
	OutcomeError Outcome = "error"
)

// ErrInvalidFile is returned for structurally invalid scenario files.
var ErrInvalidFile = errors.New("invalid scenario file")

// File is a decoded scenario file.
type File struct {
	Name  string    `yaml:"name"`
	Data  yaml.Node `yaml:"data"`
	Cases []*Case   `yaml:"cases"`

	path string
	data any
}

// Case is one assertion to run.
type Case struct {
	Name    string  `yaml:"name"`
	Subject Value   `yaml:"subject"`
	Method  string  `yaml:"method"`
	Args    []Value `yaml:"args"`
	Not     bool    `yaml:"not"`
	Length  bool    `yaml:"length"`
	Expect  Outcome `yaml:"expect"`
	// Message, when set, must be contained in the failure message.
	Message string `yaml:"message"`
}

// Path returns the file the scenario was read from, if any.
func (f *File) Path() string { return f.path }

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	f, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f.path = path

	return f, nil
}

// Decode reads and validates a scenario document.
func Decode(reader io.Reader) (*File, error) {
	var f *File
	if err := yaml.NewDecoder(reader).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if f == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFile)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	data, err := queryInput(&f.Data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}

	f.data = data

	return f, nil
}

func (f *File) validate() error {
	if len(f.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidFile)
	}

	for i, c := range f.Cases {
		if c == nil {
			return fmt.Errorf("%w: case %d is empty", ErrInvalidFile, i)
		}

		if strings.TrimSpace(c.Method) == "" {
			return fmt.Errorf("%w: case %d (%s): method is required", ErrInvalidFile, i, c.Name)
		}

		switch c.Expect {
		case "":
			c.Expect = OutcomePass
		case OutcomePass, OutcomeFail, OutcomeError:
		default:
			return fmt.Errorf("%w: case %d (%s): expect must be pass, fail or error, got %q", ErrInvalidFile, i, c.Name, c.Expect)
		}

		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i)
		}
	}

	return nil
}

// queryInput converts the data document into the plain values jq expects.
// Integers beyond int64 become *big.Int so they survive exactly.
func queryInput(node *yaml.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return queryInput(node.Content[0])
	case yaml.AliasNode:
		return queryInput(node.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))

		for _, child := range node.Content {
			v, err := queryInput(child)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := queryInput(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			out[node.Content[i].Value] = v
		}

		return out, nil
	case yaml.ScalarNode:
		return scalarInput(node)
	default:
		return nil, fmt.Errorf("line %d: %w: unsupported YAML node", node.Line, ErrInvalidValue)
	}
}

func scalarInput(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := node.Decode(&b)

		return b, err
	case "!!int":
		if n, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
			return int(n), nil
		}

		n, ok := new(big.Int).SetString(node.Value, 0)
		if !ok {
			return nil, fmt.Errorf("line %d: %w: integer %q", node.Line, ErrInvalidValue, node.Value)
		}

		return n, nil
	case "!!float":
		var f float64
		err := node.Decode(&f)

		return f, err
	default:
		return node.Value, nil
	}
}
