package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/config"
	"finitefield.org/hanko-seo/internal/head"
	"finitefield.org/hanko-seo/internal/seo"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var (
		file         string
		defaultsFile string
		format       string
		path         string
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a page's SEO config into head tags",
		Long: `Resolve reads a page SEO config (YAML or JSON) and prints the resolved tags.

Site-wide defaults are merged underneath the page config when --defaults is
given. Warnings about invalid values are printed to stderr.

Examples:
  seohead resolve -f page.yaml
  seohead resolve -f page.yaml --defaults site.yaml --format html
  cat page.yaml | seohead resolve -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "html" {
				return fmt.Errorf("unknown format %q (want json or html)", format)
			}

			page, err := readPageConfig(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			defaults, err := config.LoadDefaults(defaultsFile)
			if err != nil {
				return err
			}

			rec := &seo.Recorder{}
			resolver := seo.New(defaults, seo.WithWarner(rec))
			tags := resolver.Resolve(page, seo.RouteArgs{Path: path})

			warnColor := color.New(color.FgYellow)
			for _, msg := range rec.Messages() {
				warnColor.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "html":
				if err := head.Render(out, tags); err != nil {
					return err
				}
				fmt.Fprintln(out)
			default:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if tags == nil {
					tags = []seo.Tag{}
				}
				if err := enc.Encode(tags); err != nil {
					return err
				}
			}

			if strict && rec.Len() > 0 {
				return fmt.Errorf("%d warning(s) reported", rec.Len())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "page SEO config file (\"-\" for stdin)")
	cmd.Flags().StringVar(&defaultsFile, "defaults", "", "site-wide defaults YAML file")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or html")
	cmd.Flags().StringVar(&path, "path", "", "request path passed to the page provider")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any warning is reported")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readPageConfig decodes a page config. YAML is a superset of JSON so one
// decoder covers both.
func readPageConfig(stdin io.Reader, file string) (seo.Config, error) {
	var r io.Reader
	if file == "-" {
		r = stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return seo.Config{}, fmt.Errorf("open page config: %w", err)
		}
		defer f.Close()
		r = f
	}

	var cfg seo.Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return seo.Config{}, nil
		}
		return seo.Config{}, fmt.Errorf("decode page config: %w", err)
	}
	return cfg, nil
}
