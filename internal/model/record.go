package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Record is a domain entity that the list engine can address by dotted path.
type Record interface {
	RecordID() string
	Field(path string) any
}

// Assignable records carry an owner that can be changed in place.
type Assignable interface {
	Record
	Reassign(owner MemberRef)
}

// ID is an opaque identifier; the CRM API sends either strings or integers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// SortValue is the id as an int64 when it is a plain decimal integer, so
// numeric ids order 9 < 10 < 100. Any other id stays a string.
func (id ID) SortValue() any {
	s := string(id)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != s {
		return s
	}
	return n
}

var idType = reflect.TypeOf(ID(""))

var fieldCache sync.Map // reflect.Type -> map[string][]int

// Resolve walks a dotted path ("customer.name") through structs (by json tag
// or field name), maps with string keys and pointers. Any missing step yields
// nil. Scalar leaves are normalized to string, int64, uint64, float64 or bool.
func Resolve(v any, path string) any {
	if path == "" {
		return nil
	}
	cur := reflect.ValueOf(v)
	for _, seg := range strings.Split(path, ".") {
		cur = indirect(cur)
		if !cur.IsValid() || seg == "" {
			return nil
		}
		switch cur.Kind() {
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return nil
			}
			next := cur.MapIndex(reflect.ValueOf(seg).Convert(cur.Type().Key()))
			if !next.IsValid() {
				return nil
			}
			cur = next
		case reflect.Struct:
			idx, ok := fieldIndex(cur.Type(), seg)
			if !ok {
				return nil
			}
			next, err := cur.FieldByIndexErr(idx)
			if err != nil {
				return nil
			}
			cur = next
		default:
			return nil
		}
	}
	return normalize(indirect(cur))
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func fieldIndex(t reflect.Type, name string) ([]int, bool) {
	if cached, ok := fieldCache.Load(t); ok {
		idx, found := cached.(map[string][]int)[name]
		return idx, found
	}

	fields := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = f.Name
		}
		fields[tag] = f.Index
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		for _, alias := range []string{f.Name, strings.ToLower(f.Name)} {
			if _, taken := fields[alias]; !taken {
				fields[alias] = f.Index
			}
		}
	}
	fieldCache.Store(t, fields)

	idx, found := fields[name]
	return idx, found
}

func normalize(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.Type() == idType {
		return ID(v.String()).SortValue()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		return v.Bool()
	}
	if v.CanInterface() {
		return v.Interface()
	}
	return nil
}
