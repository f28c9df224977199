package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumFlag is a pflag.Value restricted to a fixed set of string values.
type enumFlag[T ~string] struct {
	value *T
	valid []T
}

var _ pflag.Value = (*enumFlag[string])(nil)

func newEnumFlag[T ~string](p *T, valid []T) *enumFlag[T] {
	return &enumFlag[T]{value: p, valid: valid}
}

func (f *enumFlag[T]) String() string {
	return string(*f.value)
}

func (f *enumFlag[T]) Set(s string) error {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(f.valid, v) {
		return fmt.Errorf("must be one of %s", f.choices())
	}
	*f.value = v
	return nil
}

func (f *enumFlag[T]) Type() string {
	return "string"
}

func (f *enumFlag[T]) choices() string {
	names := make([]string, len(f.valid))
	for i, v := range f.valid {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

// enumVar registers an enum flag with shell completion of its values.
func enumVar[T ~string](cmd *cobra.Command, p *T, valid []T, name, usage string) {
	f := newEnumFlag(p, valid)
	cmd.Flags().Var(f, name, fmt.Sprintf("%s (%s)", usage, f.choices()))

	completions := make([]string, len(valid))
	for i, v := range valid {
		completions[i] = string(v)
	}
	_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(completions, cobra.ShellCompDirectiveNoFileComp))
}
