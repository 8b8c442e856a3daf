package infolist

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
)

var timeTyp = reflect.TypeOf(time.Time{})

// Uses reflection to create a mapper for a struct type
// using the default options
func StructMapper[T any](ctx context.Context, it *Item) (T, error) {
	return structMapperFrom[T](defaultStructMapper)(ctx, it)
}

// Uses reflection to create a mapper for a struct type
// using custom options
func CustomStructMapper[T any](opts ...MappingOption) Mapper[T] {
	mapper, err := newStructMapper(opts...)
	if err != nil {
		return errorMapper[T](err)
	}

	return structMapperFrom[T](mapper)
}

func structMapperFrom[T any](s *structMapper) Mapper[T] {
	var x T
	typ := reflect.TypeOf(x)

	isPointer, err := checks(typ)
	if err != nil {
		return errorMapper[T](err)
	}

	if isPointer {
		typ = typ.Elem()
	}

	m := s.getMapping(typ)

	return func(_ context.Context, it *Item) (T, error) {
		var t T
		row := reflect.New(typ).Elem()

		for _, name := range it.order {
			info, ok := m[name]
			if !ok {
				if !s.allowUnknownFields {
					err := fmt.Errorf("No destination for field %q", name)
					return t, createError(err, "no destination", name)
				}
				continue
			}

			val, err := it.Get(name)
			if err != nil {
				return t, err
			}

			for _, idx := range info.init {
				pv := row.FieldByIndex(idx)
				if !pv.IsNil() {
					continue
				}
				pv.Set(reflect.New(pv.Type().Elem()))
			}

			if err := assign(row.FieldByIndex(info.position), val); err != nil {
				return t, createError(err, "cannot assign", name)
			}
		}

		if isPointer {
			row = row.Addr()
		}

		return row.Interface().(T), nil
	}
}

// Check if there are any errors, and returns if it is a pointer or not
func checks(typ reflect.Type) (bool, error) {
	if typ == nil {
		return false, fmt.Errorf("Nil type passed to StructMapper")
	}

	switch {
	case typ.Kind() == reflect.Struct:
		return false, nil
	case typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct:
		return true, nil
	default:
		return false, fmt.Errorf("Type %q is not a struct or pointer to a struct", typ.String())
	}
}

// assign sets dest from a value read from an item.
// Integers go into any numeric or bool field, strings and pointers into
// any string kind, times only into time.Time. A null pointer leaves a
// pointer field nil.
func assign(dest reflect.Value, val any) error {
	if p, ok := val.(Pointer); ok && p.IsNull() && dest.Kind() == reflect.Pointer {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}

	if dest.Kind() == reflect.Pointer {
		if dest.IsNil() {
			dest.Set(reflect.New(dest.Type().Elem()))
		}
		dest = dest.Elem()
	}

	v := reflect.ValueOf(val)
	if v.Type().AssignableTo(dest.Type()) {
		dest.Set(v)
		return nil
	}

	switch val := val.(type) {
	case int:
		switch dest.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			dest.Set(v.Convert(dest.Type()))
			return nil
		case reflect.Bool:
			dest.SetBool(val != 0)
			return nil
		}
	case string, Pointer:
		if dest.Kind() == reflect.String {
			dest.Set(v.Convert(dest.Type()))
			return nil
		}
	}

	return fmt.Errorf("cannot assign %T to %s", val, dest.Type())
}

// NameMapperFunc is a function type that maps a struct field name to the item field name.
type NameMapperFunc func(string) string

var (
	matchFirstCapRe = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCapRe   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// snakeCaseFieldFunc is a NameMapperFunc that maps struct field to snake case.
func snakeCaseFieldFunc(str string) string {
	snake := matchFirstCapRe.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCapRe.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// newStructMapper creates a new Mapping object with provided list of options.
func newStructMapper(opts ...MappingOption) (*structMapper, error) {
	api := &structMapper{
		structTagKey:       defaultStructMapper.structTagKey,
		fieldSeparator:     defaultStructMapper.fieldSeparator,
		fieldMapperFn:      defaultStructMapper.fieldMapperFn,
		allowUnknownFields: defaultStructMapper.allowUnknownFields,
		maxDepth:           defaultStructMapper.maxDepth,
		cache:              make(map[reflect.Type]mapping),
	}
	for _, o := range opts {
		if err := o(api); err != nil {
			return nil, err
		}
	}
	return api, nil
}

// MappingOption is a function type that changes Mapping configuration.
type MappingOption func(api *structMapper) error

// WithStructTagKey allows to use a custom struct tag key.
// The default tag key is `infolist`.
func WithStructTagKey(tagKey string) MappingOption {
	return func(api *structMapper) error {
		if tagKey == "" {
			return fmt.Errorf("struct tag key cannot be empty")
		}
		api.structTagKey = tagKey
		return nil
	}
}

// WithFieldSeparator allows to use a custom separator for field names when combining nested structs.
// The default separator is "_", so Buffer.Name maps to "buffer_name".
func WithFieldSeparator(separator string) MappingOption {
	return func(api *structMapper) error {
		api.fieldSeparator = separator
		return nil
	}
}

// WithFieldNameMapper allows to use a custom function to map field name to item field names.
// The default function maps fields names to "snake_case"
func WithFieldNameMapper(mapperFn NameMapperFunc) MappingOption {
	return func(api *structMapper) error {
		api.fieldMapperFn = mapperFn
		return nil
	}
}

// WithAllowUnknownFields decides what happens to item fields that have no
// destination in the struct. Hosts list far more fields than most callers
// want, so they are ignored by default.
func WithAllowUnknownFields(allow bool) MappingOption {
	return func(api *structMapper) error {
		api.allowUnknownFields = allow
		return nil
	}
}

type mapping = map[string]mapinfo

type mapinfo struct {
	position []int
	init     [][]int
}

type visited map[reflect.Type]int

func (v visited) copy() visited {
	v2 := make(visited, len(v))
	for t, c := range v {
		v2[t] = c
	}

	return v2
}

type structMapper struct {
	structTagKey       string
	fieldSeparator     string
	fieldMapperFn      NameMapperFunc
	allowUnknownFields bool
	maxDepth           int

	mu    sync.RWMutex
	cache map[reflect.Type]mapping
}

func (s *structMapper) getMapping(typ reflect.Type) mapping {
	s.mu.RLock()
	m, ok := s.cache[typ]
	s.mu.RUnlock()

	if ok {
		return m
	}

	m = make(mapping)
	s.setMappings(typ, "", make(visited), m, nil)

	s.mu.Lock()
	s.cache[typ] = m
	s.mu.Unlock()

	return m
}

func (s *structMapper) setMappings(typ reflect.Type, prefix string, v visited, m mapping, inits [][]int, position ...int) {
	count := v[typ]
	if count > s.maxDepth {
		return
	}
	v[typ] = count + 1

	// Go through the struct fields and populate the map.
	// Recursively go into any child structs, adding a prefix where necessary
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		// Don't consider unexported fields
		if !field.IsExported() {
			continue
		}

		// Skip fields that have the tag "-"
		tag := strings.Split(field.Tag.Get(s.structTagKey), ",")[0]
		if tag == "-" {
			continue
		}

		key := prefix

		if !field.Anonymous {
			var sep string
			if prefix != "" {
				sep = s.fieldSeparator
			}

			name := tag
			if tag == "" {
				name = s.fieldMapperFn(field.Name)
			}

			key = strings.Join([]string{key, name}, sep)
		}

		currentIndex := make([]int, len(position), len(position)+1)
		copy(currentIndex, position)
		currentIndex = append(currentIndex, i)

		fieldType := field.Type
		fieldInits := inits
		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
			if fieldType.Kind() == reflect.Struct && fieldType != timeTyp {
				fieldInits = append(append([][]int{}, inits...), currentIndex)
			}
		}

		if fieldType.Kind() == reflect.Struct && fieldType != timeTyp {
			s.setMappings(fieldType, key, v.copy(), m, fieldInits, currentIndex...)
			continue
		}

		m[key] = mapinfo{
			position: currentIndex,
			init:     fieldInits,
		}
	}
}

//nolint:gochecknoglobals
var defaultStructMapper = &structMapper{
	structTagKey:       "infolist",
	fieldSeparator:     "_",
	fieldMapperFn:      snakeCaseFieldFunc,
	allowUnknownFields: true,
	maxDepth:           3,
	cache:              make(map[reflect.Type]mapping),
}
