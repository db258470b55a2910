package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"loan-payment/service"
)

// UsageError reports a wrong number of arguments.
type UsageError struct {
	Program string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: %s <principal> <annual_rate_percent> <years>", e.Program)
}

// ParseError reports an argument that could not be parsed.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewRootCmd builds the command tree. program is the name printed in the
// usage message.
func NewRootCmd(program string) *cobra.Command {
	root := &cobra.Command{
		Use:   "loan-payment <principal> <annual_rate_percent> <years>",
		Short: "Computes the fixed monthly payment of an amortizing loan",
		Long: `loan-payment computes the fixed monthly payment of an amortizing loan
from its principal, annual interest rate (5 means 5%) and term in years.

The result is rounded half to even to two decimal places.
Run "loan-payment serve" to expose the calculator over HTTP.`,
		// Negative amounts must reach RunE as values, not as flags.
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd.OutOrStdout(), program, args)
		},
	}

	// Replaces cobra's help subcommand so "help" reaches RunE as a value.
	// The placeholder itself treats its name as the first argument.
	root.SetHelpCommand(&cobra.Command{
		Use:                "no-help",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd.OutOrStdout(), program, append([]string{cmd.Name()}, args...))
		},
	})
	root.AddCommand(newServeCmd())
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd(os.Args[0]).Execute()
}

func runCalculate(out io.Writer, program string, args []string) error {
	if len(args) != 3 {
		return &UsageError{Program: program}
	}

	principal, err := parseDecimal(args[0])
	if err != nil {
		return &ParseError{Field: "principal amount", Value: args[0], Err: err}
	}

	annualRate, err := parseDecimal(args[1])
	if err != nil {
		return &ParseError{Field: "annual rate", Value: args[1], Err: err}
	}

	years, err := parseYears(args[2])
	if err != nil {
		return &ParseError{Field: "years", Value: args[2], Err: err}
	}

	payment := service.CalculateMonthlyPayment(principal, annualRate, years)
	_, err = fmt.Fprintf(out, "Monthly payment: %s\n", service.FormatCurrency(payment))
	return err
}

// parseDecimal accepts plain decimal notation only; exponents such as 1e3
// are rejected.
func parseDecimal(s string) (decimal.Decimal, error) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, fmt.Errorf("exponent notation not supported: %q", s)
	}
	return decimal.NewFromString(s)
}

// parseYears accepts an unsigned 32-bit integer with an optional leading '+'.
func parseYears(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
