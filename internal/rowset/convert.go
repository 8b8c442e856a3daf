package rowset

import (
	"fmt"
	"time"

	"github.com/aarondl/opt"
	"github.com/stephenafamo/infolist"
)

// FromValues builds a row from the driver values of a database row.
//
//   - integers and bools become integers
//   - strings, byte slices and floats become strings
//   - times stay times
//   - NULL becomes the null pointer
//
// Anything else is formatted with fmt and sent as a string.
func FromValues(names []string, values []any) (*Row, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("got %d values for %d columns", len(values), len(names))
	}

	row := NewRow(len(names))
	for i, name := range names {
		typ, v, err := convert(values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		row.Set(name, typ, v)
	}

	return row, nil
}

func convert(src any) (infolist.FieldType, any, error) {
	switch src := src.(type) {
	case nil:
		return infolist.TypePointer, infolist.Pointer(""), nil

	case bool:
		if src {
			return infolist.TypeInteger, 1, nil
		}
		return infolist.TypeInteger, 0, nil

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		var i int
		if err := opt.ConvertAssign(&i, src); err != nil {
			return 0, nil, err
		}
		return infolist.TypeInteger, i, nil

	case string, []byte, float32, float64:
		var s string
		if err := opt.ConvertAssign(&s, src); err != nil {
			return 0, nil, err
		}
		return infolist.TypeString, s, nil

	case time.Time:
		return infolist.TypeTime, src, nil

	case infolist.Pointer:
		return infolist.TypePointer, src, nil

	default:
		return infolist.TypeString, fmt.Sprint(src), nil
	}
}
