package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bornholm/linksleuth/pkg/search"
	"github.com/pkg/errors"
)

// Results writes a human readable rendering of search results, one
// numbered block per result with its title, link and snippet, in the
// order the provider returned them.
func Results(w io.Writer, results []search.Result) error {
	if len(results) == 0 {
		if _, err := fmt.Fprintln(w, "No results found."); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	for i, r := range results {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n   %s\n\n", i+1, r.Title, r.Link, r.Snippet); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

// JSON writes results encoded as indented JSON, for piping into other
// tools or saving to a file.
func JSON(w io.Writer, results []search.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(results); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
