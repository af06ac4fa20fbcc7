package runtime

import (
	"strconv"
	"strings"

	"github.com/marl-lang/marl/internal/pprint"
)

// Format renders a value as a document for embedding in diagnostic bodies.
func Format(v Value) pprint.Doc {
	return pprint.Text(Render(v))
}

// Render renders a value in marl syntax.
func Render(v Value) string {
	var b strings.Builder
	render(&b, v)
	return b.String()
}

func render(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case NullValue:
		b.WriteString("null")
	case BoolValue:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case IntValue:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case StringValue:
		b.WriteString(strconv.Quote(string(val)))
	case ListValue:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, elem)
		}
		b.WriteByte(']')
	case SetValue:
		b.WriteByte('{')
		for i, elem := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, elem)
		}
		b.WriteByte('}')
	case DictValue:
		b.WriteByte('{')
		for i, entry := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, entry.Key)
			b.WriteString(": ")
			render(b, entry.Value)
		}
		b.WriteByte('}')
	case *BuiltinValue:
		b.WriteString(val.Name)
	default:
		panic("runtime: unknown Value variant")
	}
}
