// If you are AI: This file renders value trees as indented text for terminals and logs.
// Colour is opt-in; with it off the output is plain ASCII plus the raw string bytes.

package amf0

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DateLayout is the layout used to print dates.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// DumpOptions controls Dump output.
type DumpOptions struct {
	// Color wraps tokens in ANSI colour sequences.
	Color bool
	// Location is the zone dates are printed in. Nil means time.Local.
	Location *time.Location
}

// palette holds one formatter per token class.
type palette struct {
	number  func(a ...any) string
	literal func(a ...any) string
	str     func(a ...any) string
	name    func(a ...any) string
	sep     func(a ...any) string
	date    func(a ...any) string
}

// newPalette returns coloured formatters, or plain ones when enabled is false.
func newPalette(enabled bool) palette {
	if !enabled {
		return palette{number: fmt.Sprint, literal: fmt.Sprint, str: fmt.Sprint,
			name: fmt.Sprint, sep: fmt.Sprint, date: fmt.Sprint}
	}
	mk := func(c *color.Color) func(a ...any) string {
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		number:  mk(color.RGB(128, 216, 236)),
		literal: mk(color.New(color.FgCyan)),
		str:     mk(color.RGB(8, 196, 16)),
		name:    mk(color.RGB(196, 96, 16)),
		sep:     mk(color.RGB(196, 128, 128)),
		date:    mk(color.New(color.FgMagenta)),
	}
}

// dumper accumulates the rendering of one tree.
type dumper struct {
	sb  strings.Builder
	p   palette
	loc *time.Location
}

// Dump writes a text rendering of v followed by a newline.
func Dump(w io.Writer, v Value, opts DumpOptions) error {
	if w == nil {
		return ErrNilTransport
	}
	d := &dumper{p: newPalette(opts.Color), loc: opts.Location}
	if d.loc == nil {
		d.loc = time.Local
	}
	d.value(v, 0)
	d.sb.WriteByte('\n')
	_, err := io.WriteString(w, d.sb.String())
	return err
}

// Sdump returns the plain rendering of v without the trailing newline.
func Sdump(v Value) string {
	d := &dumper{p: newPalette(false), loc: time.Local}
	d.value(v, 0)
	return d.sb.String()
}

// indent writes four spaces per level.
func (d *dumper) indent(level int) {
	d.sb.WriteString(strings.Repeat(" ", level*4))
}

// value renders v at the given nesting level.
func (d *dumper) value(v Value, level int) {
	switch v := v.(type) {
	case Number:
		d.sb.WriteString(d.p.number(fmt.Sprintf("%.12g", v.Float64())))
	case Boolean:
		d.sb.WriteString(d.p.literal(fmt.Sprintf("%t", bool(v))))
	case String:
		d.sb.WriteString(d.p.str("'" + string(v) + "'"))
	case Null:
		d.sb.WriteString(d.p.literal("null"))
	case Undefined:
		d.sb.WriteString(d.p.literal("undefined"))
	case Date:
		d.sb.WriteString(d.p.date(v.Time().In(d.loc).Format(DateLayout)))
	case *Object:
		d.properties(&v.Properties, ": ", level)
	case *AssociativeArray:
		d.properties(&v.Properties, " => ", level)
	case *Array:
		d.sb.WriteString(d.p.sep("["))
		d.sb.WriteByte('\n')
		for elem := range v.All() {
			d.indent(level + 1)
			d.value(elem, level+1)
			d.sb.WriteByte('\n')
		}
		d.indent(level)
		d.sb.WriteString(d.p.sep("]"))
	}
}

// properties renders a braced block of named entries.
func (d *dumper) properties(p *Properties, sep string, level int) {
	d.sb.WriteString(d.p.sep("{"))
	d.sb.WriteByte('\n')
	for name, v := range p.All() {
		d.indent(level + 1)
		d.sb.WriteString(d.p.name("'" + name + "'"))
		d.sb.WriteString(d.p.sep(sep))
		d.value(v, level+1)
		d.sb.WriteByte('\n')
	}
	d.indent(level)
	d.sb.WriteString(d.p.sep("}"))
}
