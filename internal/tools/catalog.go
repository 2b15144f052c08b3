// Package tools implements the document operations exposed to agents.
//
// Every operation opens the document it is given by path, applies one
// change, saves and returns a status line. Operations share nothing in
// memory, so any sequence of them can run against the same file.
package tools

import (
	"context"
	"reflect"
	"strings"
)

// Handler runs an operation with keyword arguments. Handled failures are
// part of the returned status; errors are reserved for bad arguments and
// unexpected conditions.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// ParamType is the JSON type of an argument.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

// Param describes one keyword argument.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any
	// Items is the JSON schema of array elements; nil for other types.
	Items map[string]any
}

// Tool is a catalog entry: an operation name, its arguments and handler.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Define builds a Tool whose arguments are decoded into A. Parameters are
// derived from A's fields:
//
//	Filename string `json:"filename" arg:"required" desc:"Path to the document"`
//
// Non-zero fields of defaults become the argument defaults.
func Define[A any](name, description string, defaults A, run func(ctx context.Context, a A) (string, error)) Tool {
	params := paramsOf(reflect.ValueOf(defaults))
	return Tool{
		Name:        name,
		Description: description,
		Params:      params,
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			a := defaults
			if err := decodeArgs(name, args, params, &a); err != nil {
				return "", err
			}
			return run(ctx, a)
		},
	}
}

func paramsOf(v reflect.Value) []Param {
	t := v.Type()
	params := make([]Param, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		p := Param{
			Name:        name,
			Type:        paramType(f.Type),
			Description: f.Tag.Get("desc"),
			Required:    f.Tag.Get("arg") == "required",
		}
		if p.Type == TypeArray {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			p.Items = schemaOf(ft.Elem())
		}
		if fv := v.Field(i); !fv.IsZero() {
			if fv.Kind() == reflect.Pointer {
				fv = fv.Elem()
			}
			p.Default = fv.Interface()
		}
		params = append(params, p)
	}
	return params
}

func paramType(t reflect.Type) ParamType {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger
	case reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Bool:
		return TypeBoolean
	case reflect.Slice, reflect.Array:
		return TypeArray
	default:
		return TypeObject
	}
}

func schemaOf(t reflect.Type) map[string]any {
	pt := paramType(t)
	s := map[string]any{"type": string(pt)}
	if pt == TypeArray {
		s["items"] = schemaOf(t.Elem())
	}
	return s
}

// Catalog returns every document operation in registration order.
func Catalog(env *Env) []Tool {
	groups := [][]Tool{
		documentTools(env),
		contentTools(env),
		formatTools(env),
		protectionTools(env),
		footnoteTools(env),
		extendedTools(env),
		layoutTools(env),
		headerFooterTools(env),
		chapterTools(env),
		codeTools(env),
		bookTools(env),
		navigationTools(env),
		captionTools(env),
		exportTools(env),
		qaTools(env),
	}
	var all []Tool
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
