// Package flags holds urfave/cli flag helpers shared by the shardvote commands.
package flags

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// EnumValue is a string flag restricted to a fixed set of values. Matching ignores case
// and the destination receives the value as it is spelled in Enum.
type EnumValue struct {
	Name        string
	Usage       string
	EnvVars     []string
	Destination *string
	Enum        []string
	Value       string
}

// Set implements cli.Generic.
func (e *EnumValue) Set(value string) error {
	if canonical, ok := e.lookup(value); ok {
		*e.Destination = canonical
		return nil
	}
	return errors.Errorf("%q is not one of %s", value, strings.Join(e.Enum, ", "))
}

func (e *EnumValue) String() string {
	if e.Destination == nil || *e.Destination == "" {
		return e.Value
	}
	return *e.Destination
}

func (e *EnumValue) lookup(value string) (string, bool) {
	for _, enum := range e.Enum {
		if strings.EqualFold(enum, strings.TrimSpace(value)) {
			return enum, true
		}
	}
	return "", false
}

// GenericFlag turns the enum into a cli.Flag. The default is written to Destination
// immediately, so it holds even when the flag is never parsed.
func (e EnumValue) GenericFlag() *cli.GenericFlag {
	*e.Destination = e.Value
	var g cli.Generic = &e
	return &cli.GenericFlag{
		Name:        e.Name,
		Usage:       e.Usage + " (" + strings.Join(e.Enum, ", ") + ")",
		EnvVars:     e.EnvVars,
		Destination: g,
		Value:       g,
	}
}
