package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// BindToStruct binds snapshot values to struct fields using env tags.
// A variable that is absent or empty falls back to the field's default tag.
func BindToStruct(snapshot map[string]string, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct")
	}

	return bindStructFields(snapshot, targetValue.Elem())
}

// bindStructFields binds the top-level fields of structValue.
func bindStructFields(snapshot map[string]string, structValue reflect.Value) error {
	structType := structValue.Type()

	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		fieldType := structType.Field(i)

		if !field.CanSet() {
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value := snapshot[envTag]
		if value == "" {
			value = fieldType.Tag.Get("default")
		}

		if err := setFieldValue(field, value); err != nil {
			return fmt.Errorf("failed to set field %s from %s: %w", fieldType.Name, envTag, err)
		}
	}

	return nil
}

// setFieldValue sets a string, bool or time.Duration field from a string.
func setFieldValue(field reflect.Value, value string) error {
	if value == "" {
		return nil // Keep zero value
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int64:
		if field.Type() != reflect.TypeOf(time.Duration(0)) {
			return fmt.Errorf("unsupported field type: %s", field.Type())
		}
		duration, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(duration))
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
