// Package field splits an operator line into alphabetic and numeric fields.
package field

const (
	// MaxFields is the number of fields recorded per line.
	MaxFields = 5
)

// Type classifies a field.
type Type byte

const (
	// None marks a delimiter byte; it never appears in a Table.
	None Type = 0
	// Alpha is a run of ASCII letters.
	Alpha Type = 'a'
	// Numeric is a run of ASCII digits.
	Numeric Type = 'n'
)

// Field is a span over the line a Table was built from.
type Field struct {
	Offset int
	Length int
	Type   Type
}

// Table holds the fields recognised in one line.
// It keeps its own copy of the line, so spans stay valid after the caller's buffer is reused.
type Table struct {
	line   string
	fields []Field
}

// classify returns the class of a single byte.
func classify(c byte) Type {
	switch {
	case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
		return Alpha
	case c >= '0' && c <= '9':
		return Numeric
	default:
		return None
	}
}

// Tokenize scans line and records up to MaxFields fields.
// A field starts at position 0 if that byte is classified, and wherever the class changes
// into a letter or digit. Delimiters separate fields and are never recorded.
func Tokenize(line string) Table {
	t := Table{
		line:   line,
		fields: make([]Field, 0, MaxFields),
	}

	prev := None
	for i := 0; i < len(line) && len(t.fields) < MaxFields; i++ {
		cls := classify(line[i])
		if cls != None && (i == 0 || cls != prev) {
			t.fields = append(t.fields, Field{Offset: i, Type: cls})
		}
		if cls != None {
			t.fields[len(t.fields)-1].Length++
		}
		prev = cls
	}

	// The scan stops once the table is full; the last field still runs to the end of its class.
	if n := len(t.fields); n == MaxFields {
		last := &t.fields[n-1]
		for end := last.Offset + last.Length; end < len(line) && classify(line[end]) == last.Type; end++ {
			last.Length++
		}
	}

	return t
}

// Line returns the line the table was built from.
func (t *Table) Line() string {
	return t.line
}

// Count returns the number of recognised fields.
func (t *Table) Count() int {
	return len(t.fields)
}

// Fields returns a copy of the recognised spans.
func (t *Table) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Type returns the type of field i, or None when i is out of range.
func (t *Table) Type(i int) Type {
	if i < 0 || i >= len(t.fields) {
		return None
	}
	return t.fields[i].Type
}

// String returns the text of field i, or "" when i is out of range.
func (t *Table) String(i int) string {
	if i < 0 || i >= len(t.fields) {
		return ""
	}
	f := t.fields[i]
	if f.Type != Alpha && f.Type != Numeric {
		return ""
	}
	return t.line[f.Offset : f.Offset+f.Length]
}

// Uint decodes field i as an unsigned decimal number.
// It returns 0 for an out-of-range index, an empty field or any non-digit content.
// Values wider than 32 bits wrap.
func (t *Table) Uint(i int) uint32 {
	return DecodeUint(t.String(i))
}

// DecodeUint adds digit*10^(len-1-k) for every digit k of s.
func DecodeUint(s string) uint32 {
	var v uint32
	n := len(s)
	for k := 0; k < n; k++ {
		c := s[k]
		if c < '0' || c > '9' {
			return 0
		}
		v += uint32(c-'0') * pow10(n-1-k)
	}
	return v
}

func pow10(e int) uint32 {
	p := uint32(1)
	for range e {
		p *= 10
	}
	return p
}
