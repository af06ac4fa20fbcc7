package runtime

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON document into a value. Objects become dicts with
// string keys, arrays become lists, and numbers must be integral because
// marl has no fractional atom. Entry order follows the document.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	// A single document is expected; anything after it is an error.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON document")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var entries DictValue
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				entries = append(entries, Entry{Key: StringValue(key), Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return entries, nil
		case '[':
			var elems ListValue
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return elems, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return StringValue(t), nil
	case json.Number:
		n, err := strconv.ParseInt(t.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("number %s is not an integer", t.String())
		}
		return IntValue(n), nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return Null, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

// DecodeYAML decodes a YAML document into a value. Mappings become dicts
// (keys may be any scalar), sequences become lists, and numbers must be
// integral. Entry order follows the document.
func DecodeYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Null, nil
	}
	return decodeYAMLNode(root.Content[0])
}

func decodeYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeYAMLNode(node.Alias)
	case yaml.MappingNode:
		var entries DictValue
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := decodeYAMLNode(node.Content[i])
			if err != nil {
				return nil, err
			}
			val, err := decodeYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: key, Value: val})
		}
		return entries, nil
	case yaml.SequenceNode:
		var elems ListValue
		for _, child := range node.Content {
			elem, err := decodeYAMLNode(child)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return elems, nil
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return Null, nil
		case "!!bool":
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid bool %q", node.Line, node.Value)
			}
			return BoolValue(b), nil
		case "!!int":
			n, err := strconv.ParseInt(node.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
			}
			return IntValue(n), nil
		case "!!str":
			return StringValue(node.Value), nil
		default:
			return nil, fmt.Errorf("line %d: unsupported YAML scalar %s", node.Line, node.Tag)
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}
