package search

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var ErrPropertyNotFound = errors.New("property not found")

// Context looks up a property value of a record by name.
type Context interface {
	Get(name string) (any, error)
}

type MapContext map[string]any

func (c MapContext) Get(name string) (any, error) {
	v, ok := c[name]
	if !ok {
		return nil, errors.Wrapf(ErrPropertyNotFound, "%q", name)
	}
	return v, nil
}

// StructContext reads exported fields of a struct (or pointer to struct).
// Names match the field name or its json tag, ignoring case.
type StructContext struct {
	value reflect.Value
}

func NewStructContext(v any) StructContext {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return StructContext{value: rv}
}

func (c StructContext) Get(name string) (any, error) {
	if c.value.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrPropertyNotFound, "%q on %s", name, c.value.Kind())
	}
	t := c.value.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return c.value.Field(i).Interface(), nil
		}
		if tag := jsonName(f); tag != "" && strings.EqualFold(tag, name) {
			return c.value.Field(i).Interface(), nil
		}
	}
	return nil, errors.Wrapf(ErrPropertyNotFound, "%q on %s", name, t)
}

func jsonName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}
