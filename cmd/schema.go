package cmd

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/transit/internal/aspect"
	"github.com/papapumpkin/transit/internal/duration"
	"github.com/papapumpkin/transit/internal/significance"
	"github.com/papapumpkin/transit/internal/sky"
	"github.com/papapumpkin/transit/internal/zodiac"
)

// schemaTargets maps record names to a zero value of the record type.
var schemaTargets = map[string]any{
	"duration": duration.Duration{},
	"timing":   aspect.Timing{},
	"detail":   significance.Detail{},
	"report":   sky.Report{},
	"chart":    sky.Chart{},
}

var schemaCmd = &cobra.Command{
	Use:       "schema RECORD",
	Short:     "Print the JSON Schema of an output record",
	ValidArgs: schemaNames(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, err := recordSchema(args[0])
	if err != nil {
		return err
	}
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("schema: marshal: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func recordSchema(name string) (*jsonschema.Schema, error) {
	v, ok := schemaTargets[name]
	if !ok {
		return nil, fmt.Errorf("schema: unknown record %q (want one of %s)", name, strings.Join(schemaNames(), ", "))
	}
	r := jsonschema.Reflector{
		DoNotReference: true,
		Mapper:         mapZodiacTypes,
	}
	return r.Reflect(v), nil
}

// mapZodiacTypes describes the text-marshalled zodiac types as string enums.
func mapZodiacTypes(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeOf(zodiac.Aspect(0)):
		enum := make([]any, len(zodiac.Aspects))
		for i, a := range zodiac.Aspects {
			enum[i] = a.String()
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	case reflect.TypeOf(zodiac.Sign("")):
		enum := make([]any, len(zodiac.Signs))
		for i, s := range zodiac.Signs {
			enum[i] = string(s)
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	}
	return nil
}

func schemaNames() []string {
	names := make([]string, 0, len(schemaTargets))
	for n := range schemaTargets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
