package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/holiman/uint256"
	"github.com/itchyny/gojq"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Value types accepted in scenario files.
const (
	TypeNil     = "nil"
	TypeBool    = "bool"
	TypeInt     = "int"
	TypeUint    = "uint"
	TypeFloat   = "float"
	TypeString  = "string"
	TypeBigInt  = "bigint"
	TypeDecimal = "decimal"
	TypeAPD     = "apd"
	TypeUint256 = "uint256"
	TypeList    = "list"
	TypeMap     = "map"
	TypeQuery   = "query"
)

var (
	// ErrUnknownType is returned for a {type} that is not supported.
	ErrUnknownType = errors.New("unknown value type")
	// ErrInvalidValue is returned when a value does not parse as its type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrQueryNoResult is returned when a query yields nothing.
	ErrQueryNoResult = errors.New("query produced no result")
)

// Value is a typed scenario operand.
type Value struct {
	Type    string
	Raw     string
	Items   []Value
	Entries map[string]Value
}

type typedValue struct {
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.AliasNode:
		return v.UnmarshalYAML(node.Alias)
	case yaml.ScalarNode:
		return v.decodeScalar(node)
	case yaml.SequenceNode:
		v.Type = TypeList
		return v.decodeItems(node)
	case yaml.MappingNode:
		if !hasKey(node, "type") {
			v.Type = TypeMap
			return v.decodeEntries(node)
		}

		var tv typedValue
		if err := node.Decode(&tv); err != nil {
			return err
		}

		return v.decodeTyped(tv)
	default:
		return fmt.Errorf("line %d: %w: unsupported YAML node", node.Line, ErrInvalidValue)
	}
}

func (v *Value) decodeScalar(node *yaml.Node) error {
	v.Raw = node.Value

	switch node.ShortTag() {
	case "!!null":
		v.Type = TypeNil
	case "!!bool":
		v.Type = TypeBool
	case "!!int":
		v.Type = TypeInt
	case "!!float":
		v.Type = TypeFloat
	default:
		v.Type = TypeString
	}

	return nil
}

func (v *Value) decodeItems(node *yaml.Node) error {
	v.Items = make([]Value, 0, len(node.Content))

	for _, child := range node.Content {
		var item Value
		if err := child.Decode(&item); err != nil {
			return err
		}

		v.Items = append(v.Items, item)
	}

	return nil
}

func (v *Value) decodeEntries(node *yaml.Node) error {
	v.Entries = make(map[string]Value, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var item Value
		if err := node.Content[i+1].Decode(&item); err != nil {
			return err
		}

		v.Entries[node.Content[i].Value] = item
	}

	return nil
}

func (v *Value) decodeTyped(tv typedValue) error {
	v.Type = strings.ToLower(strings.TrimSpace(tv.Type))

	switch v.Type {
	case TypeNil:
		return nil
	case TypeList:
		if tv.Value.Kind != yaml.SequenceNode {
			return fmt.Errorf("line %d: %w: list value must be a sequence", tv.Value.Line, ErrInvalidValue)
		}

		return v.decodeItems(&tv.Value)
	case TypeMap:
		if tv.Value.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: %w: map value must be a mapping", tv.Value.Line, ErrInvalidValue)
		}

		return v.decodeEntries(&tv.Value)
	case TypeBool, TypeInt, TypeUint, TypeFloat, TypeString, TypeBigInt, TypeDecimal, TypeAPD, TypeUint256, TypeQuery:
		if tv.Value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: %w: %s value must be a scalar", tv.Value.Line, ErrInvalidValue, v.Type)
		}

		v.Raw = tv.Value.Value

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, tv.Type)
	}
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}

	return false
}

// Resolve builds the Go value. data is the document queries run against.
func (v Value) Resolve(ctx context.Context, data any) (any, error) {
	switch v.Type {
	case TypeNil, "":
		return nil, nil
	case TypeBool:
		b, err := strconv.ParseBool(v.Raw)
		return b, v.wrap(err)
	case TypeInt:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, v.wrap(fmt.Errorf("%w (use type bigint for large integers)", err))
		}

		return int(n), nil
	case TypeUint:
		n, err := strconv.ParseUint(v.Raw, 10, 64)
		return uint64(n), v.wrap(err)
	case TypeFloat:
		return parseFloat(v.Raw, v)
	case TypeString:
		return v.Raw, nil
	case TypeBigInt:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v.Raw), 10)
		if !ok {
			return nil, v.wrap(errors.New("not a decimal integer"))
		}

		return n, nil
	case TypeDecimal:
		d, err := decimal.NewFromString(v.Raw)
		return d, v.wrap(err)
	case TypeAPD:
		d, _, err := apd.NewFromString(v.Raw)
		return d, v.wrap(err)
	case TypeUint256:
		n, err := uint256.FromDecimal(v.Raw)
		return n, v.wrap(err)
	case TypeList:
		return v.resolveList(ctx, data)
	case TypeMap:
		return v.resolveMap(ctx, data)
	case TypeQuery:
		return runQuery(ctx, v.Raw, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, v.Type)
	}
}

func (v Value) resolveList(ctx context.Context, data any) (any, error) {
	out := make([]any, 0, len(v.Items))

	for i, item := range v.Items {
		resolved, err := item.Resolve(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out = append(out, resolved)
	}

	return out, nil
}

func (v Value) resolveMap(ctx context.Context, data any) (any, error) {
	out := make(map[string]any, len(v.Entries))

	for key, item := range v.Entries {
		resolved, err := item.Resolve(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}

		out[key] = resolved
	}

	return out, nil
}

func (v Value) wrap(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, v.Type, v.Raw, err)
}

func parseFloat(raw string, v Value) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, v.wrap(err)
	}

	return f, nil
}

// runQuery evaluates a jq expression and returns its first result. Large
// integers come back as *big.Int.
func runQuery(ctx context.Context, expr string, data any) (any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse query %q: %w", expr, err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", expr, err)
	}

	iter := code.RunWithContext(ctx, data)

	result, ok := iter.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrQueryNoResult, expr)
	}

	if err, isErr := result.(error); isErr {
		return nil, fmt.Errorf("run query %q: %w", expr, err)
	}

	return result, nil
}
