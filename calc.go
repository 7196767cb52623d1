package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"emi-calculator/calculator"
	"emi-calculator/domain"
	"emi-calculator/form"
)

// errInvalidFields is returned once the field messages are already printed.
var errInvalidFields = errors.New("invalid fields")

type calcOutput struct {
	Input   domain.LoanInput  `json:"input" yaml:"input"`
	Result  domain.LoanResult `json:"result" yaml:"result"`
	Display form.Display      `json:"display" yaml:"display"`
}

func newCalcCmd() *cobra.Command {
	var (
		fields form.Fields
		output string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the monthly installment and total interest",
		Example: `  emi calc --principal 100000 --rate 8.5 --years 5
  emi calc --principal 250000 --rate 9.1 --years 2.5 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q (use text, json or yaml)", output)
			}

			input, err := form.Parse(fields)
			if err != nil {
				var fieldErrs form.FieldErrors
				if errors.As(err, &fieldErrs) {
					printFieldErrors(cmd.ErrOrStderr(), fieldErrs)
					return errInvalidFields
				}
				return err
			}

			result, err := calculator.ComputeInput(input)
			if err != nil {
				return err
			}

			return writeCalcOutput(cmd.OutOrStdout(), output, calcOutput{
				Input:   input,
				Result:  result,
				Display: form.Present(result),
			})
		},
	}

	cmd.Flags().StringVar(&fields.Principal, "principal", "", "loan amount")
	cmd.Flags().StringVar(&fields.AnnualRatePercent, "rate", "", "annual interest rate in percent, e.g. 8.5")
	cmd.Flags().StringVar(&fields.TermYears, "years", "", "loan term in years, fractions allowed")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

func printFieldErrors(w io.Writer, errs form.FieldErrors) {
	for _, name := range []string{domain.FieldPrincipal, domain.FieldAnnualRatePercent, domain.FieldTermYears} {
		if msg, ok := errs[name]; ok {
			fmt.Fprintf(w, "%s: %s\n", name, msg)
		}
	}
}

func writeCalcOutput(w io.Writer, format string, out calcOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	_, err := fmt.Fprintf(w, "Monthly EMI:    %s\nTotal Interest: %s\nTotal Payment:  %s\n",
		out.Display.MonthlyPayment, out.Display.TotalInterest, out.Display.TotalPayment)
	return err
}
