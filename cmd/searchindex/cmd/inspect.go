package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/language"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/snapshot"
)

type inspectOptions struct {
	terms      []string
	jsonOutput bool
}

// inspectReport is the --json output of inspect.
type inspectReport struct {
	EnvVersion string              `codec:"envversion"`
	Docs       int                 `codec:"docs"`
	Terms      int                 `codec:"terms"`
	TitleTerms int                 `codec:"titleterms"`
	Objects    int                 `codec:"objects"`
	ObjTypes   []string            `codec:"objtypes"`
	Lookups    map[string][]string `codec:"lookups,omitempty"`
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show a summary of the stored snapshot",
		Long: `Print the envversion, document, term and object counts of the stored
snapshot. With --term, the documents matching each stemmed term are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := root.cfg
			a, err := newApp(ctx, cfg, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.Close()

			format, err := snapshot.Lookup(cfg.Index.Format)
			if err != nil {
				return err
			}
			frozen, err := snapshot.Fetch(ctx, a.artifacts, cfg.Index.SnapshotName, format)
			if err != nil {
				return err
			}
			report := buildReport(frozen, a.coord.Language(), opts.terms)
			if opts.jsonOutput {
				out, err := snapshot.JSLiteral(report)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			printReport(cmd.OutOrStdout(), report, opts.terms)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.terms, "term", "t", nil, "look up the documents of a word")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")
	return cmd
}

func buildReport(f *index.Frozen, lang language.Ruleset, words []string) inspectReport {
	r := inspectReport{
		EnvVersion: f.EnvVersion,
		Docs:       len(f.Docnames),
		Terms:      len(f.Terms),
		TitleTerms: len(f.TitleTerms),
	}
	for _, objs := range f.Objects {
		r.Objects += len(objs)
	}
	for _, t := range f.ObjTypes {
		r.ObjTypes = append(r.ObjTypes, t)
	}
	sort.Strings(r.ObjTypes)

	if len(words) > 0 {
		r.Lookups = make(map[string][]string, len(words))
		for _, w := range words {
			r.Lookups[w] = lookup(f, lang, w)
		}
	}
	return r
}

// lookup returns the documents whose title or body holds word, trying the
// stem first and the lower-cased word second.
func lookup(f *index.Frozen, lang language.Ruleset, word string) []string {
	seen := make(map[int]struct{})
	for _, term := range []string{lang.Stem(word), strings.ToLower(word)} {
		for _, postings := range [][]int{f.Terms[term], f.TitleTerms[term]} {
			for _, i := range postings {
				seen[i] = struct{}{}
			}
		}
	}
	docs := make([]string, 0, len(seen))
	for i := range seen {
		if i >= 0 && i < len(f.Docnames) {
			docs = append(docs, f.Docnames[i])
		}
	}
	sort.Strings(docs)
	return docs
}

func printReport(w io.Writer, r inspectReport, words []string) {
	fmt.Fprintf(w, "envversion:  %s\n", r.EnvVersion)
	fmt.Fprintf(w, "documents:   %d\n", r.Docs)
	fmt.Fprintf(w, "terms:       %d\n", r.Terms)
	fmt.Fprintf(w, "title terms: %d\n", r.TitleTerms)
	fmt.Fprintf(w, "objects:     %d\n", r.Objects)
	for _, t := range r.ObjTypes {
		fmt.Fprintf(w, "  type %s\n", t)
	}
	for _, word := range words {
		fmt.Fprintf(w, "%s: %v\n", word, r.Lookups[word])
	}
}
