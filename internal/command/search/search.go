package search

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bornholm/linksleuth/internal/config"
	"github.com/bornholm/linksleuth/internal/render"
	searchEngine "github.com/bornholm/linksleuth/pkg/search"
	"github.com/bornholm/linksleuth/pkg/search/google"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Search() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run a query against the configured search engine and print the results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Value:   "",
				Aliases: []string{"q"},
				EnvVars: []string{"LINKSLEUTH_QUERY"},
				Usage:   "The search query, prompted for on standard input when omitted",
			},
			&cli.Int64Flag{
				Name:    "num",
				Value:   google.MaxResults,
				Aliases: []string{"n"},
				EnvVars: []string{"LINKSLEUTH_NUM"},
				Usage:   "How many results to ask for, between 1 and 10",
			},
			&cli.Int64Flag{
				Name:    "start",
				Value:   0,
				EnvVars: []string{"LINKSLEUTH_START"},
				Usage:   "One based index of the first result, for paging",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"I"},
				EnvVars: []string{"LINKSLEUTH_INTERACTIVE"},
				Usage:   "Keep prompting for queries until an empty line",
			},
			&cli.StringFlag{
				Name:      "output",
				Value:     "",
				Aliases:   []string{"o"},
				EnvVars:   []string{"LINKSLEUTH_OUTPUT"},
				TakesFile: true,
				Usage:     "Write results as JSON to this file instead of rendering them",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			query := cliCtx.String("query")
			num := cliCtx.Int64("num")
			start := cliCtx.Int64("start")
			interactive := cliCtx.Bool("interactive")
			output := cliCtx.String("output")

			conf, err := config.Load()
			if err != nil {
				return errors.Wrapf(err, "failed to load configuration")
			}

			clientOpts := []google.OptionFunc{google.WithNum(num)}

			if start > 0 {
				clientOpts = append(clientOpts, google.WithStart(start))
			}

			if conf.Endpoint != "" {
				clientOpts = append(clientOpts, google.WithEndpoint(conf.Endpoint))
			}

			client := google.NewClient(conf.APIKey, conf.SearchEngineID, clientOpts...)

			run := func(query string) error {
				ctx, cancel := context.WithTimeout(cliCtx.Context, conf.Timeout)
				defer cancel()

				results, err := client.Search(ctx, query)
				if err != nil {
					return errors.Wrapf(err, "failed to execute search")
				}

				if output != "" {
					return errors.WithStack(writeResults(cliCtx.Context, output, query, results))
				}

				if err := render.Results(cliCtx.App.Writer, results); err != nil {
					return errors.WithStack(err)
				}

				return nil
			}

			if query != "" {
				return run(query)
			}

			reader := bufio.NewReader(cliCtx.App.Reader)

			for {
				if _, err := fmt.Fprint(cliCtx.App.Writer, "Search query: "); err != nil {
					return errors.WithStack(err)
				}

				line, readErr := reader.ReadString('\n')

				query = strings.TrimSpace(line)
				if query == "" {
					// The user quit with an empty line, or input ran out.
					if interactive {
						return nil
					}

					return errors.New("empty query")
				}

				if err := run(query); err != nil {
					return err
				}

				if readErr != nil || !interactive {
					return nil
				}
			}
		},
	}
}

// writeResults saves results as JSON. When path points at a directory
// the file is named after the query.
func writeResults(ctx context.Context, path string, query string, results []searchEngine.Result) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, slug.Make(query)+".json")
	}

	var buf bytes.Buffer

	if err := render.JSON(&buf, results); err != nil {
		return errors.WithStack(err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write results")
	}

	slog.InfoContext(ctx, "results written", slog.String("output", path))

	return nil
}
