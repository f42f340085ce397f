package utils

import (
	"reflect"
	"strings"
)

// Sanitize aplica TrimSpace em todos os campos string e *string de uma struct.
// Um *string que fica vazio vira nil (campo opcional vazio = ausente).
func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(strings.TrimSpace(field.String()))

		case reflect.Ptr:
			if field.IsNil() || field.Elem().Kind() != reflect.String {
				continue
			}
			s := strings.TrimSpace(field.Elem().String())
			if s == "" {
				field.Set(reflect.Zero(field.Type()))
				continue
			}
			field.Elem().SetString(s)
		}
	}
}
