package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/wingbox/pkg/wing"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Params string
	Script string
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// ValidationIssue is one parameter violation.
type ValidationIssue struct {
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check wing parameters without building geometry",
		Long: `Validate loads parameters from --params or --script and runs the full
range check. No kernel calls are made; the exit status reflects validity.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Errors are formatted by the command itself
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Params, "params", "", "wing parameters YAML file")
	cmd.Flags().StringVar(&opts.Script, "script", "", "wing script file")

	return cmd
}

func runValidate(rootOpts *RootOptions, opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := &Formatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	p, _, err := loadParameters(opts.Params, opts.Script)
	if err != nil {
		_ = formatter.Error(loadErrorCode(err), err.Error(), nil)
		return err
	}

	if err := p.Validate(); err != nil {
		return outputValidationIssues(formatter, validationIssues(err))
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "✓ parameters valid")
	fmt.Fprintf(formatter.Writer, "  model: %s (%d ribs, %d spars)\n", p.Name, p.NumRibs, p.NumSpars)
	return nil
}

// validationIssues flattens a joined validation error into issues.
func validationIssues(err error) []ValidationIssue {
	var issues []ValidationIssue

	collect := func(e error) {
		var invalid *wing.InvalidParameterError
		if errors.As(e, &invalid) {
			issues = append(issues, ValidationIssue{
				Field:  invalid.Field,
				Value:  invalid.Value,
				Reason: invalid.Reason,
			})
			return
		}
		issues = append(issues, ValidationIssue{Field: "params", Reason: e.Error()})
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collect(e)
		}
		return issues
	}
	collect(err)
	return issues
}

// outputValidationIssues reports the violations and returns the failure
// exit error.
func outputValidationIssues(formatter *Formatter, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		response := Response{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: issues},
			Error: &Error{
				Code:    "invalid_parameters",
				Message: fmt.Sprintf("%s: %s", issues[0].Field, issues[0].Reason),
			},
		}
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ invalid parameters")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range issues {
		fmt.Fprintf(formatter.Writer, "  %s=%g: %s\n", issue.Field, issue.Value, issue.Reason)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
