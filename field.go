package infolist

import "strings"

// FieldType is the type tag of a field, as sent by the host in the field list
type FieldType byte

const (
	TypeInteger FieldType = 'i'
	TypeString  FieldType = 's'
	TypePointer FieldType = 'p'
	TypeTime    FieldType = 't'
)

// Valid reports whether t is one of the known type tags
func (t FieldType) Valid() bool {
	switch t {
	case TypeInteger, TypeString, TypePointer, TypeTime:
		return true
	default:
		return false
	}
}

func (t FieldType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	case TypePointer:
		return "pointer"
	case TypeTime:
		return "time"
	default:
		return "unknown(" + string(rune(t)) + ")"
	}
}

// parseFields reads a field list such as "i:number,s:name,p:buffer".
// The first byte of a token is the type, the second a separator
// whose value is ignored, the rest is the field name.
// Tokens too short to carry a type and a separator are skipped.
func parseFields(list string) (map[string]FieldType, []string) {
	types := make(map[string]FieldType)
	if list == "" {
		return types, nil
	}

	tokens := strings.Split(list, ",")
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < 2 {
			continue
		}

		name := tok[2:]
		if _, ok := types[name]; !ok {
			order = append(order, name)
		}
		types[name] = FieldType(tok[0])
	}

	return types, order
}

// FormatFields is the inverse of the parsing done for every item.
// Hosts implemented in Go can use it to build their field lists.
func FormatFields(names []string, types map[string]FieldType) string {
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(byte(types[name]))
		b.WriteByte(':')
		b.WriteString(name)
	}

	return b.String()
}
