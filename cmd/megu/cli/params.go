// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a flag set named name whose flags write into
// the tagged fields of params. It panics if params cannot be bound,
// since a bad params struct is a bug in the command definition.
//
//	var params validateParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("validate", &params) },
//	    Run:   func(args []string) error { return runValidate(args, &params) },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("binding %s flags: %v", name, err))
	}
	return flagSet
}

// BindFlags adds one flag to flagSet per field of *params that has a
// flag tag:
//
//	Format string `flag:"format,f" desc:"output format" default:"json"`
//
// The flag tag holds the long name and an optional one-letter
// shorthand. default is parsed as the field's type. Fields may be
// string, bool, int, or []string. Fields promoted from embedded
// structs are bound too, so a params struct can embed [JSONOutput]
// to gain --json.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	target := value.Elem()

	for _, field := range reflect.VisibleFields(target.Type()) {
		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		fieldValue, err := target.FieldByIndexErr(field.Index)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		spec := flagSpec{
			description:  field.Tag.Get("desc"),
			defaultValue: field.Tag.Get("default"),
		}
		spec.name, spec.shorthand, _ = strings.Cut(tag, ",")
		if err := spec.bind(fieldValue.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// flagSpec is one parsed set of flag, desc, and default tags.
type flagSpec struct {
	name         string
	shorthand    string
	description  string
	defaultValue string
}

func (s flagSpec) bind(pointer any, flagSet *pflag.FlagSet) error {
	switch target := pointer.(type) {
	case *string:
		flagSet.StringVarP(target, s.name, s.shorthand, s.defaultValue, s.description)
	case *bool:
		value, err := parseDefault(s, strconv.ParseBool)
		if err != nil {
			return err
		}
		flagSet.BoolVarP(target, s.name, s.shorthand, value, s.description)
	case *int:
		value, err := parseDefault(s, strconv.Atoi)
		if err != nil {
			return err
		}
		flagSet.IntVarP(target, s.name, s.shorthand, value, s.description)
	case *[]string:
		var value []string
		if s.defaultValue != "" {
			value = strings.Split(s.defaultValue, ",")
		}
		flagSet.StringSliceVarP(target, s.name, s.shorthand, value, s.description)
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", reflect.TypeOf(pointer).Elem(), s.name)
	}
	return nil
}

// parseDefault returns the zero T when no default tag was given.
func parseDefault[T any](s flagSpec, parse func(string) (T, error)) (T, error) {
	var value T
	if s.defaultValue == "" {
		return value, nil
	}
	value, err := parse(s.defaultValue)
	if err != nil {
		return value, fmt.Errorf("default %q for --%s: %w", s.defaultValue, s.name, err)
	}
	return value, nil
}
