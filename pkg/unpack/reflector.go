// Package unpack decodes JSON into Go values whose interface-typed fields
// hold one of a closed set of concrete struct types.  Each concrete type
// carries a discriminant field tagged `unpack:""` whose JSON value names
// the type, e.g.,
//
//	type BinaryExpression struct {
//		Kind string `json:"type" unpack:""`
//		...
//	}
//
// A Reflector is built from templates of every concrete type and then
// reconstructs a tree from its JSON encoding.  Concrete values are always
// allocated as pointers when stored in an interface.
package unpack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type Reflector struct {
	key   string
	types map[string]reflect.Type
}

// New returns a Reflector for the concrete types of templates.  The name
// of a type is its Go type name unless the unpack tag supplies one.
func New(templates ...any) *Reflector {
	r := &Reflector{types: make(map[string]reflect.Type)}
	for _, tmpl := range templates {
		typ := reflect.TypeOf(tmpl)
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		key, name, ok := discriminant(typ)
		if !ok {
			panic(fmt.Sprintf("unpack: type %s has no unpack tag", typ))
		}
		if r.key == "" {
			r.key = key
		} else if r.key != key {
			panic(fmt.Sprintf("unpack: type %s uses key %q instead of %q", typ, key, r.key))
		}
		if _, ok := r.types[name]; ok {
			panic(fmt.Sprintf("unpack: duplicate type name %q", name))
		}
		r.types[name] = typ
	}
	return r
}

func discriminant(typ reflect.Type) (string, string, bool) {
	if typ.Kind() != reflect.Struct {
		return "", "", false
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		alt, ok := f.Tag.Lookup("unpack")
		if !ok {
			continue
		}
		key, _ := jsonName(f)
		name := typ.Name()
		if alt != "" {
			name = alt
		}
		return key, name, true
	}
	return "", "", false
}

func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name, true
	}
	return name, true
}

// Unmarshal decodes buf into the value pointed to by result.
func (r *Reflector) Unmarshal(buf []byte, result any) error {
	v := reflect.ValueOf(result)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return errors.New("unpack: result must be a non-nil pointer")
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return err
	}
	return r.unpack(v.Elem(), generic)
}

func (r *Reflector) unpack(v reflect.Value, in any) error {
	if in == nil {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	switch v.Kind() {
	case reflect.Interface:
		obj, ok := in.(map[string]any)
		if !ok {
			return fmt.Errorf("unpack: expected object for %s", v.Type())
		}
		name, ok := obj[r.key].(string)
		if !ok {
			return fmt.Errorf("unpack: object for %s has no %q field", v.Type(), r.key)
		}
		typ, ok := r.types[name]
		if !ok {
			return fmt.Errorf("unpack: unknown %s %q", r.key, name)
		}
		ptr := reflect.New(typ)
		if err := r.unpackStruct(ptr.Elem(), obj); err != nil {
			return err
		}
		if !ptr.Type().AssignableTo(v.Type()) {
			return fmt.Errorf("unpack: %s %q cannot be used as %s", r.key, name, v.Type())
		}
		v.Set(ptr)
	case reflect.Pointer:
		ptr := reflect.New(v.Type().Elem())
		if err := r.unpack(ptr.Elem(), in); err != nil {
			return err
		}
		v.Set(ptr)
	case reflect.Struct:
		obj, ok := in.(map[string]any)
		if !ok {
			return fmt.Errorf("unpack: expected object for %s", v.Type())
		}
		return r.unpackStruct(v, obj)
	case reflect.Slice:
		arr, ok := in.([]any)
		if !ok {
			return fmt.Errorf("unpack: expected array for %s", v.Type())
		}
		s := reflect.MakeSlice(v.Type(), len(arr), len(arr))
		for i, elem := range arr {
			if err := r.unpack(s.Index(i), elem); err != nil {
				return err
			}
		}
		v.Set(s)
	default:
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, v.Addr().Interface())
	}
	return nil
}

func (r *Reflector) unpackStruct(v reflect.Value, obj map[string]any) error {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name, ok := jsonName(f)
		if !ok {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("json") == "" {
			// Untagged embedded structs are inlined as encoding/json does.
			if err := r.unpackStruct(v.Field(i), obj); err != nil {
				return err
			}
			continue
		}
		val, ok := obj[name]
		if !ok {
			continue
		}
		if err := r.unpack(v.Field(i), val); err != nil {
			return fmt.Errorf("%s.%s: %w", typ.Name(), f.Name, err)
		}
	}
	return nil
}
