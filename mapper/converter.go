/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapper

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"
)

// Converter converts between configuration text and a concrete type. ToText
// must produce text that FromText accepts, so registered values round-trip.
type Converter interface {
	// FromText parses text into a value of the converter's type.
	FromText(text string) (any, error)

	// ToText renders a value of the converter's type.
	ToText(v any) (string, error)

	// Quoted reports whether rendered values carry text semantics and
	// must be quoted to survive re-parsing (for example a string that
	// happens to look like a number).
	Quoted() bool
}

var (
	convertersMu sync.RWMutex
	converters   = map[reflect.Type]Converter{}
)

// Register installs a converter for t, replacing any previous registration.
// Registered converters take precedence over the built-in kind handling.
func Register(t reflect.Type, c Converter) {
	convertersMu.Lock()
	defer convertersMu.Unlock()
	converters[t] = c
}

func converterFor(t reflect.Type) (Converter, bool) {
	convertersMu.RLock()
	defer convertersMu.RUnlock()
	c, ok := converters[t]
	return c, ok
}

// durationConverter maps time.Duration to its standard string form
// ("250ms", "1h30m").
type durationConverter struct{}

func (durationConverter) FromText(text string) (any, error) {
	return time.ParseDuration(text)
}

func (durationConverter) ToText(v any) (string, error) {
	d, ok := v.(time.Duration)
	if !ok {
		return "", fmt.Errorf("expected time.Duration, got %T", v)
	}
	return d.String(), nil
}

func (durationConverter) Quoted() bool { return false }

func init() {
	Register(reflect.TypeOf(time.Duration(0)), durationConverter{})
}

// convertFromText assigns text to the addressable scalar value v.
func convertFromText(text string, v reflect.Value) error {
	if c, ok := converterFor(v.Type()); ok {
		parsed, err := c.FromText(text)
		if err != nil {
			return err
		}
		pv := reflect.ValueOf(parsed)
		if !pv.Type().AssignableTo(v.Type()) {
			if !pv.Type().ConvertibleTo(v.Type()) {
				return fmt.Errorf("converter returned %s, want %s", pv.Type(), v.Type())
			}
			pv = pv.Convert(v.Type())
		}
		v.Set(pv)
		return nil
	}

	if tu, ok := v.Addr().Interface().(textUnmarshaler); ok {
		return tu.UnmarshalText([]byte(text))
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(text, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(text, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := parseBool(text)
		if err != nil {
			return err
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
	return nil
}

// convertToText renders the scalar value v. The second return reports
// whether the text carries string semantics and must be quoted.
func convertToText(v reflect.Value) (string, bool, error) {
	if c, ok := converterFor(v.Type()); ok {
		text, err := c.ToText(v.Interface())
		return text, c.Quoted(), err
	}

	if tm, ok := v.Interface().(textMarshaler); ok {
		text, err := tm.MarshalText()
		return string(text), true, err
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), false, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), false, nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), false, nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), false, nil
	}
	return "", false, fmt.Errorf("unsupported type %s", v.Type())
}

// parseBool accepts the spellings common in configuration files.
func parseBool(text string) (bool, error) {
	switch text {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", text)
}

type textUnmarshaler interface {
	UnmarshalText(text []byte) error
}

type textMarshaler interface {
	MarshalText() (text []byte, err error)
}
