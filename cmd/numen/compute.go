package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/numen/pkg/api"
	"github.com/hazyhaar/numen/pkg/numerology"
	"github.com/hazyhaar/numen/pkg/wordsearch"
)

const dateLayout = "2006-01-02"

func nameCmd(a *app) *cobra.Command {
	var birthDate string
	cmd := &cobra.Command{
		Use:   "name NAME...",
		Short: "Compute the signature of a name",
		Long: `Compute the expression, soul urge and personality numbers of a name.
Arguments are joined with spaces. With --birth-date the life path and
maturity numbers are added.`,
		Example: `  numen name Ada Lovelace --birth-date 1815-12-10`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := api.ParseOptionalDate(birthDate)
			if err != nil {
				return err
			}
			out, err := a.call(cmd.Context(), a.endpoints().NameSignature,
				&api.NameRequest{Name: strings.Join(args, " "), BirthDate: birth})
			if err != nil {
				return err
			}
			resp := out.(*api.NameResponse)
			return a.print(cmd, resp, func() error {
				w := cmd.OutOrStdout()
				writeField(w, "name", resp.Name)
				writeNameSignature(w, resp.NameSignature)
				if resp.LifePath != nil {
					writeField(w, "life_path", *resp.LifePath)
					writeField(w, "maturity", *resp.Maturity)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date, e.g. 1990-01-01")
	a.addJSONFlag(cmd)
	return cmd
}

func namesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "names NAME...",
		Short:   "Compute the signatures of several names",
		Example: `  numen names "Ada Lovelace" "Alan Turing"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.call(cmd.Context(), a.endpoints().NameBatch, &api.NameBatchRequest{Names: args})
			if err != nil {
				return err
			}
			resp := out.(*api.NameBatchResponse)
			return a.print(cmd, resp, func() error {
				w := cmd.OutOrStdout()
				for _, sig := range resp.Results {
					fmt.Fprintf(w, "%s\texpression=%d soul_urge=%d personality=%d\n",
						sig.Name, sig.Expression, sig.SoulUrge, sig.Personality)
				}
				return nil
			})
		},
	}
	a.addJSONFlag(cmd)
	return cmd
}

func dateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "date DATE",
		Short:   "Compute the signature of a date",
		Example: `  numen date 2023-12-10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := api.ParseDate(args[0])
			if err != nil {
				return err
			}
			out, err := a.call(cmd.Context(), a.endpoints().DateSignature, &api.DateRequest{Date: date})
			if err != nil {
				return err
			}
			sig := out.(numerology.DateSignature)
			return a.print(cmd, sig, func() error {
				w := cmd.OutOrStdout()
				writeField(w, "date", sig.Date.Format(dateLayout))
				writeField(w, "life_path", sig.LifePath)
				writeField(w, "attitude", sig.Attitude)
				writeField(w, "generation", sig.Generation)
				writeField(w, "day_of_birth", sig.DayOfBirth)
				return nil
			})
		},
	}
	a.addJSONFlag(cmd)
	return cmd
}

func datesCmd(a *app) *cobra.Command {
	var lifePaths string
	cmd := &cobra.Command{
		Use:   "dates START END",
		Short: "List the signatures of every date in a range",
		Long: `List the signature of every date from START to END inclusive.
With --life-paths only dates whose life path is in the list are printed.`,
		Example: `  numen dates 2024-01-01 2024-12-31 --life-paths 11,22`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := api.ParseDate(args[0])
			if err != nil {
				return err
			}
			end, err := api.ParseDate(args[1])
			if err != nil {
				return err
			}
			lps, err := api.ParseIntList(lifePaths)
			if err != nil {
				return err
			}
			out, err := a.call(cmd.Context(), a.endpoints().DateRange,
				&api.DateRangeRequest{Start: start, End: end, LifePaths: lps})
			if err != nil {
				return err
			}
			resp := out.(*api.DateRangeResponse)
			return a.print(cmd, resp, func() error {
				w := cmd.OutOrStdout()
				for _, d := range resp.Dates {
					fmt.Fprintf(w, "%s\tlife_path=%d attitude=%d generation=%d day_of_birth=%d\n",
						d.Date.Format(dateLayout), d.LifePath, d.Attitude, d.Generation, d.DayOfBirth)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%d dates\n", resp.Count)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lifePaths, "life-paths", "", "comma-separated life paths to keep, e.g. 11,22")
	a.addJSONFlag(cmd)
	return cmd
}

func searchCmd(a *app) *cobra.Command {
	req := &api.SearchRequest{}
	targets := make(map[numerology.Attribute]*int, len(numerology.Attributes))
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search generated words by target numbers",
		Long: `Generate words of alternating vowels and consonants in lexicographic
order and print those whose numbers match every given target. At least one
of --expression, --soul-urge and --personality is required.`,
		Example: `  numen search --expression 1 --soul-urge 11 --max-letters 5 --limit 20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Target = map[string]int{}
			for _, attr := range numerology.Attributes {
				if cmd.Flags().Changed(flagName(attr)) {
					req.Target[string(attr)] = *targets[attr]
				}
			}
			out, err := a.call(cmd.Context(), a.endpoints().SearchWords, req)
			if err != nil {
				return err
			}
			res := out.(*wordsearch.Result)
			return a.print(cmd, res, func() error {
				w := cmd.OutOrStdout()
				for _, word := range res.Words {
					fmt.Fprintln(w, word)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%d words, %d candidates examined, exhausted=%t\n",
					len(res.Words), res.Examined, res.Exhausted)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.IntVarP(&req.Limit, "limit", "n", 10, "maximum number of words")
	f.IntVar(&req.MinLetters, "min-letters", 1, "shortest word length")
	f.IntVar(&req.MaxLetters, "max-letters", 5, "longest word length")
	for _, attr := range numerology.Attributes {
		targets[attr] = f.Int(flagName(attr), 0, "required "+strings.ReplaceAll(string(attr), "_", " ")+" number")
	}
	a.addJSONFlag(cmd)
	return cmd
}

func reduceCmd(a *app) *cobra.Command {
	var ignoreMasters bool
	cmd := &cobra.Command{
		Use:     "reduce NUMBER",
		Short:   "Reduce a number to a single digit or master number",
		Example: `  numen reduce 1994`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: %q", numerology.ErrInvalidNumber, args[0])
			}
			out, err := a.call(cmd.Context(), a.endpoints().ReduceNumber,
				&api.ReduceRequest{Number: n, IgnoreMasters: ignoreMasters})
			if err != nil {
				return err
			}
			resp := out.(*api.ReduceResponse)
			return a.print(cmd, resp, func() error {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Reduced)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&ignoreMasters, "ignore-masters", false, "reduce 11 and 22 as well")
	a.addJSONFlag(cmd)
	return cmd
}

// flagName turns an attribute into its flag spelling, soul_urge -> soul-urge.
func flagName(attr numerology.Attribute) string {
	return strings.ReplaceAll(string(attr), "_", "-")
}

func writeNameSignature(w io.Writer, sig numerology.NameSignature) {
	writeField(w, "expression", sig.Expression)
	writeField(w, "soul_urge", sig.SoulUrge)
	writeField(w, "personality", sig.Personality)
}

func writeField(w io.Writer, key string, v any) {
	fmt.Fprintf(w, "%-13s %v\n", key, v)
}
