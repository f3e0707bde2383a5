// If you are AI: This file compiles and evaluates tag filter expressions.
// Expressions see type, timestamp, size and keyframe and must yield a boolean.

package remux

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// TagInfo is what a filter expression can inspect.
type TagInfo struct {
	Type      string // "audio", "video", "metadata" or "unknown(n)"
	Timestamp uint32 // milliseconds
	Size      uint32 // body bytes
	Keyframe  bool
}

// env returns the expression environment for t.
func (t TagInfo) env() map[string]any {
	return map[string]any{
		"type":      t.Type,
		"timestamp": int(t.Timestamp),
		"size":      int(t.Size),
		"keyframe":  t.Keyframe,
	}
}

// Filter is a compiled tag filter. The zero value keeps everything.
type Filter struct {
	code string
	prog *vm.Program
}

// NewFilter compiles code. An empty expression keeps every tag.
func NewFilter(code string) (*Filter, error) {
	f := &Filter{code: code}
	if code == "" {
		return f, nil
	}
	prog, err := expr.Compile(code, expr.Env(TagInfo{}.env()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", code, err)
	}
	f.prog = prog
	return f, nil
}

// Keep reports whether the tag passes the filter.
func (f *Filter) Keep(t TagInfo) (bool, error) {
	if f == nil || f.prog == nil {
		return true, nil
	}
	out, err := expr.Run(f.prog, t.env())
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.code, err)
	}
	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T", f.code, out)
	}
	return keep, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.code
}
