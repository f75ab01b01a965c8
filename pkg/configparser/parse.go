package configparser

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// ParseEnv walks dst (a pointer to a struct) and fills every field tagged
// with `env:"NAME"` from the environment, falling back to the `default`
// tag when the variable is unset. Nested structs are walked recursively.
func ParseEnv(dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("configparser: dst must be a pointer to a struct, got %T", dst)
	}
	return parseStruct(v.Elem())
}

func parseStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)

		if !fv.CanSet() {
			continue
		}

		if fv.Kind() == reflect.Struct && fv.Type() != reflect.TypeOf(time.Duration(0)) && field.Tag.Get("env") == "" {
			if err := parseStruct(fv); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		raw := os.Getenv(envName)
		if raw == "" {
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("configparser: field %s (%s): %w", field.Name, envName, err)
		}
	}

	return nil
}

func setField(fv reflect.Value, raw string) error {
	// time.Duration before the generic int case
	if fv.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return err
		}
		fv.SetInt(int64(d))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(raw)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(raw)
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}

	return nil
}
