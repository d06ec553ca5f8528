package main

import (
	"github.com/bornholm/linksleuth/internal/command"
	"github.com/bornholm/linksleuth/internal/command/enrich"
	"github.com/bornholm/linksleuth/internal/command/search"
)

// Set at build time with -ldflags.
var version = "dev"

func main() {
	command.Main(
		"linksleuth", version,
		"Find the public URLs of social media posts with Google Custom Search",
		search.Search(),
		enrich.Enrich(),
	)
}
