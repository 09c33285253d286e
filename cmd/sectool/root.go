package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/sectool/internal/domain/filing"
	"github.com/kailas-cloud/sectool/internal/domain/fulltext"
	logpkg "github.com/kailas-cloud/sectool/internal/logger"
	"github.com/kailas-cloud/sectool/internal/version"
)

func newRootCmd() *cobra.Command {
	var apiKey string

	root := &cobra.Command{
		Use:           "sectool",
		Short:         "SEC filings tool for LLM agents",
		Long:          "Query SEC filings by ticker or full text, or serve the sec_api tool over HTTP.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiKey, "api-key", "",
		"SEC API key (overrides secapi.api_key from config)")

	root.AddCommand(
		newServeCmd(&apiKey),
		newQueryCmd(&apiKey),
		newFilingsCmd(&apiKey),
		newSearchCmd(&apiKey),
		newVersionCmd(),
	)
	return root
}

func newQueryCmd(apiKey *string) *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Run a routed query (ticker -> filings, otherwise full-text)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *apiKey)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := logpkg.ContextWithLogger(cmd.Context(), a.logger)
			res, err := a.tool.Run(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newFilingsCmd(apiKey *string) *cobra.Command {
	var (
		formType string
		from     string
		to       string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "filings <ticker>",
		Short: "List filings for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := filing.New(args[0],
				filing.WithFormType(formType),
				filing.WithDateRange(from, to),
				filing.WithLimit(limit),
			)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), *apiKey)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.tool.FilingSearch(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&formType, "form-type", "", "Form type filter, e.g. 10-K")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", filing.DefaultLimit, "Maximum number of filings")
	return cmd
}

func newSearchCmd(apiKey *string) *cobra.Command {
	var (
		formTypes []string
		from      string
		to        string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Full-text search across filings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *apiKey)
			if err != nil {
				return err
			}
			defer a.Close()

			p := fulltext.New(args[0],
				fulltext.WithFormTypes(formTypes...),
				fulltext.WithDateRange(from, to),
				fulltext.WithLimit(limit),
			)
			res, err := a.tool.FullTextSearch(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringSliceVar(&formTypes, "form-types", nil, "Form types, comma separated or repeated")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", fulltext.DefaultLimit, "Maximum number of hits")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
