package runner

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// FillStatement binds params to stmt in positional order. When parameter
// validation is enabled the declared placeholder count must match the number
// of supplied values exactly; a zero-placeholder statement with zero values
// skips binding entirely.
func (r *Runner) FillStatement(stmt Statement, params ...any) error {
	if r.validate {
		declared, err := stmt.ParameterCount()
		if err != nil {
			return fmt.Errorf("parameter metadata: %w", err)
		}
		if declared != len(params) {
			return fmt.Errorf("%w: statement declares %d, got %d", ErrParameterCountMismatch, declared, len(params))
		}
		if declared == 0 {
			return nil
		}
	}
	for i, p := range params {
		if err := stmt.Bind(i+1, p); err != nil {
			return fmt.Errorf("bind parameter %d: %w", i+1, err)
		}
	}
	return nil
}

// FillStatementWithBean binds stmt placeholders from named properties of the
// source object, in the order the names are given. Resolution prefers an
// explicit PropertyAccessor; otherwise reflection looks up a getter method,
// then an exported struct field.
func (r *Runner) FillStatementWithBean(stmt Statement, bean any, properties ...string) error {
	params := make([]any, len(properties))
	for i, name := range properties {
		if name == "" {
			return fmt.Errorf("%w: empty property name at index %d", ErrBinderConfig, i)
		}
		v, err := property(bean, name)
		if err != nil {
			return err
		}
		params[i] = v
	}
	return r.FillStatement(stmt, params...)
}

func property(bean any, name string) (any, error) {
	if bean == nil {
		return nil, fmt.Errorf("%w: nil source object", ErrBinderConfig)
	}
	if acc, ok := bean.(PropertyAccessor); ok {
		v, err := acc.Property(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBinderConfig, name, err)
		}
		return v, nil
	}
	return reflectProperty(bean, name)
}

// reflectProperty resolves a property by getter method or exported field.
// Reflection stays confined to this file; the rest of the runner only sees
// plain values.
func reflectProperty(bean any, name string) (any, error) {
	exported := exportedName(name)

	v := reflect.ValueOf(bean)
	if m := v.MethodByName(exported); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return m.Call(nil)[0].Interface(), nil
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("%w: nil source object", ErrBinderConfig)
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		if f := v.FieldByName(exported); f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}
	return nil, fmt.Errorf("%w: no property %q on %T", ErrBinderConfig, name, bean)
}

// exportedName upper-cases the first rune so "name" resolves Name.
func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
