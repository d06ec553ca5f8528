package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bornholm/linksleuth/internal/config"
	"github.com/bornholm/linksleuth/internal/logx"
	"github.com/bornholm/linksleuth/pkg/probe"
	searchEngine "github.com/bornholm/linksleuth/pkg/search"
	"github.com/bornholm/linksleuth/pkg/search/google"
	"github.com/bornholm/linksleuth/pkg/social"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Enrich() *cli.Command {
	return &cli.Command{
		Name:  "enrich",
		Usage: "Recover the public post URLs for a CSV extraction of social media posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "input",
				Required:  true,
				Aliases:   []string{"i"},
				EnvVars:   []string{"LINKSLEUTH_INPUT"},
				TakesFile: true,
				Usage:     "The CSV extraction with the posts",
			},
			&cli.StringFlag{
				Name:     "network",
				Required: true,
				Aliases:  []string{"N"},
				EnvVars:  []string{"LINKSLEUTH_NETWORK"},
				Usage:    "The social network the posts were extracted from",
			},
			&cli.StringFlag{
				Name:      "networks",
				Value:     "",
				EnvVars:   []string{"LINKSLEUTH_NETWORKS"},
				TakesFile: true,
				Usage:     "A YAML file with additional network definitions",
			},
			&cli.StringFlag{
				Name:      "output",
				Value:     "",
				Aliases:   []string{"o"},
				EnvVars:   []string{"LINKSLEUTH_OUTPUT"},
				TakesFile: true,
				Usage:     "Where to write the enriched CSV",
			},
			&cli.IntFlag{
				Name:    "min-text",
				Value:   social.DefaultMinQueryLength,
				EnvVars: []string{"LINKSLEUTH_MIN_TEXT"},
				Usage:   "Skip posts whose query ends up shorter than this, in characters",
			},
			&cli.Int64Flag{
				Name:    "num",
				Value:   5,
				Aliases: []string{"n"},
				EnvVars: []string{"LINKSLEUTH_NUM"},
				Usage:   "How many results to ask for per post, between 1 and 10",
			},
			&cli.IntFlag{
				Name:    "retries",
				Value:   5,
				EnvVars: []string{"LINKSLEUTH_RETRIES"},
				Usage:   "How often to retry a rate limited search",
			},
			&cli.DurationFlag{
				Name:    "base-delay",
				Value:   time.Second,
				EnvVars: []string{"LINKSLEUTH_BASE_DELAY"},
				Usage:   "Base delay of the exponential backoff between retries",
			},
			&cli.BoolFlag{
				Name:    "verify",
				EnvVars: []string{"LINKSLEUTH_VERIFY"},
				Usage:   "Probe every recovered URL and drop it when it does not respond",
			},
			&cli.BoolFlag{
				Name:    "strict",
				EnvVars: []string{"LINKSLEUTH_STRICT"},
				Usage:   "Fail when any search errors instead of moving on to the next post",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			input := cliCtx.String("input")
			networkName := cliCtx.String("network")
			networksFile := cliCtx.String("networks")
			output := cliCtx.String("output")
			minText := cliCtx.Int("min-text")
			num := cliCtx.Int64("num")
			retries := cliCtx.Int("retries")
			baseDelay := cliCtx.Duration("base-delay")
			verify := cliCtx.Bool("verify")
			strict := cliCtx.Bool("strict")

			conf, err := config.Load()
			if err != nil {
				return errors.Wrapf(err, "failed to load configuration")
			}

			networks := social.Builtins()

			if networksFile != "" {
				loaded, err := social.LoadNetworks(networksFile)
				if err != nil {
					return errors.Wrapf(err, "failed to load additional networks")
				}

				networks = append(networks, loaded...)
			}

			network, err := social.Find(networks, networkName)
			if err != nil {
				return errors.WithStack(err)
			}

			posts, err := social.ReadPosts(input)
			if err != nil {
				return errors.Wrapf(err, "failed to read posts")
			}

			textIdx, err := posts.Column(network.TextColumn)
			if err != nil {
				return errors.Wrapf(err, "failed to find the post text")
			}

			urlIdx := posts.EnsureColumn(network.URLColumn)

			clientOpts := []google.OptionFunc{google.WithNum(num)}

			if conf.Endpoint != "" {
				clientOpts = append(clientOpts, google.WithEndpoint(conf.Endpoint))
			}

			client := searchEngine.WithRetry(
				google.NewClient(conf.APIKey, conf.SearchEngineID, clientOpts...),
				retries, baseDelay,
			)

			searchPost := func(ctx context.Context, query string) ([]searchEngine.Result, error) {
				ctx, cancel := context.WithTimeout(ctx, conf.Timeout)
				defer cancel()

				return client.Search(ctx, query)
			}

			slog.InfoContext(cliCtx.Context, "recovering post urls",
				slog.String("network", network.Name),
				slog.Int("posts", len(posts.Records)),
			)

			var errs error
			found := 0
			skipped := 0

			for i, record := range posts.Records {
				ctx := logx.With(cliCtx.Context, slog.Int("row", i+1))

				query := network.BuildQuery(record[textIdx])

				if length := utf8.RuneCountInString(query); length < minText {
					slog.InfoContext(ctx, "post skipped", slog.Int("length", length))
					skipped++
					continue
				}

				results, err := searchPost(ctx, query)
				if err != nil {
					slog.WarnContext(ctx, "search failed", slog.Any("error", err))

					if strict {
						errs = multierror.Append(errs, errors.Wrapf(err, "row %d", i+1))
					}

					continue
				}

				link := network.FirstMatch(results)
				if link == "" {
					slog.InfoContext(ctx, "no post url found")
					continue
				}

				if verify {
					if alive, err := probe.Check(ctx, link); err != nil || !alive {
						slog.WarnContext(ctx, "recovered url does not respond, dropping it", slog.String("url", link))
						continue
					}
				}

				posts.Records[i][urlIdx] = link
				found++

				slog.InfoContext(ctx, "post url found", slog.String("url", link))
			}

			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "_with_urls.csv"
			}

			if err := posts.WriteFile(output); err != nil {
				return errors.Wrapf(err, "failed to write enriched posts")
			}

			total := len(posts.Records)

			fmt.Fprintf(cliCtx.App.Writer, "Search finished. URLs found: %d/%d\n", found, total)
			fmt.Fprintf(cliCtx.App.Writer, "Posts skipped (query shorter than %d characters): %d\n", minText, skipped)
			fmt.Fprintf(cliCtx.App.Writer, "Posts searched without a match: %d\n", total-found-skipped)

			slog.InfoContext(cliCtx.Context, "enriched posts written", slog.String("output", output))

			if errs != nil {
				return errors.WithStack(errs)
			}

			return nil
		},
	}
}
