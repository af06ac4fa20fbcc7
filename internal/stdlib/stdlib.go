// Package stdlib implements the marl standard library: a flat registry of
// named builtin functions, each carrying a declared type so call sites can
// be checked against it.
package stdlib

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/marl-lang/marl/internal/runtime"
	"github.com/marl-lang/marl/internal/types"
)

// Builtin is a function implemented by the toolchain itself.
type Builtin struct {
	Name string
	Type *types.Func
	Fn   func(args []runtime.Value) (runtime.Value, error)
}

var builtins = []Builtin{
	{
		Name: "read_file_utf8",
		Type: &types.Func{
			Args:   []types.Type{types.TypeString},
			Result: types.TypeString,
		},
		Fn: readFileUTF8,
	},
}

func readFileUTF8(args []runtime.Value) (runtime.Value, error) {
	// The argument type is checked ahead of the call, so a non-string here
	// is a defect in the caller.
	path, ok := args[0].(runtime.StringValue)
	if !ok {
		panic("stdlib: read_file_utf8 called with a non-string argument")
	}
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: file is not valid UTF-8", path)
	}
	return runtime.StringValue(data), nil
}

// Registry returns the standard library as a dictionary value mapping names
// to builtin functions.
func Registry() runtime.DictValue {
	entries := make(runtime.DictValue, 0, len(builtins))
	for _, b := range builtins {
		fn := b.Fn
		entries = append(entries, runtime.Entry{
			Key:   runtime.StringValue(b.Name),
			Value: &runtime.BuiltinValue{Name: "std." + b.Name, Fn: fn},
		})
	}
	return entries
}

// Signature returns the declared type of the named builtin, or nil when no
// builtin with that name exists.
func Signature(name string) *types.Func {
	for _, b := range builtins {
		if b.Name == name {
			return b.Type
		}
	}
	return nil
}
