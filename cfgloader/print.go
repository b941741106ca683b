package cfgloader

import (
	"log/slog"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

func printConfig(config any) {
	out, err := yaml.Marshal(maskStruct(config))
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info("[cfgloader]: loaded config:\n" + string(out))
}

// maskStruct returns a copy of cfg in which every field tagged `mask:"true"` is hidden.
func maskStruct(cfg any) any {
	val := reflect.ValueOf(cfg)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	return maskValue(val).Interface()
}

func maskValue(val reflect.Value) reflect.Value {
	switch val.Kind() { //nolint:exhaustive // only composite kinds need walking
	case reflect.Ptr:
		if val.IsNil() {
			return val
		}
		ptr := reflect.New(val.Elem().Type())
		ptr.Elem().Set(maskValue(val.Elem()))
		return ptr

	case reflect.Struct:
		masked := reflect.New(val.Type()).Elem()
		for i := range val.NumField() {
			field := val.Type().Field(i)
			if !masked.Field(i).CanSet() {
				continue
			}
			if field.Tag.Get("mask") == "true" {
				masked.Field(i).Set(maskField(val.Field(i)))
				continue
			}
			masked.Field(i).Set(maskValue(val.Field(i)))
		}
		return masked

	default:
		return val
	}
}

func maskField(val reflect.Value) reflect.Value {
	if val.Kind() == reflect.String {
		return reflect.ValueOf(strings.Repeat("*", len(val.String()))).Convert(val.Type())
	}
	return reflect.Zero(val.Type())
}
