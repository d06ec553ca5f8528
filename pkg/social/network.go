package social

import (
	"os"
	"strings"

	"github.com/bornholm/linksleuth/pkg/search"
	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

// Network describes how posts of a social network are recognized: which
// domain its permalinks live on, which URL shapes count as a post, which
// CSV columns carry the post text and the recovered URL, and the site
// restriction prepended to every search query.
type Network struct {
	Name       string   `yaml:"name"`
	Domain     string   `yaml:"domain"`
	PathGlobs  []string `yaml:"paths"`
	TextColumn string   `yaml:"textColumn"`
	URLColumn  string   `yaml:"urlColumn"`
	SiteQuery  string   `yaml:"siteQuery"`

	globs []glob.Glob
}

var Facebook = Network{
	Name:       "facebook",
	Domain:     "https://www.facebook.com/",
	PathGlobs:  []string{"*posts/*", "*videos/*", "*photos/*", "*groups/*"},
	TextColumn: "Caption",
	URLColumn:  "URL",
	SiteQuery:  "site:facebook.com",
}

var Instagram = Network{
	Name:       "instagram",
	Domain:     "https://www.instagram.com/",
	PathGlobs:  []string{"*p/*", "*tv/*", "*reel/*", "*video/*", "*photo/*"},
	TextColumn: "Caption",
	URLColumn:  "URL",
	SiteQuery:  "site:instagram.com",
}

func init() {
	for _, n := range []*Network{&Facebook, &Instagram} {
		if err := n.Compile(); err != nil {
			panic(err)
		}
	}
}

// Builtins returns the networks supported out of the box.
func Builtins() []Network {
	return []Network{Facebook, Instagram}
}

// Find returns the named network from the given set, matching names case
// insensitively.
func Find(networks []Network, name string) (*Network, error) {
	for i := range networks {
		if strings.EqualFold(networks[i].Name, name) {
			return &networks[i], nil
		}
	}

	return nil, errors.Errorf("unknown network '%s'", name)
}

// Compile parses the network path globs. Built in and loaded networks
// come pre compiled.
func (n *Network) Compile() error {
	globs := make([]glob.Glob, 0, len(n.PathGlobs))
	for _, pattern := range n.PathGlobs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return errors.Wrapf(err, "could not compile glob '%s'", pattern)
		}

		globs = append(globs, g)
	}

	n.globs = globs

	return nil
}

// MatchLink reports whether link points at a post on this network: it
// must contain the network domain and match at least one path glob.
func (n *Network) MatchLink(link string) bool {
	if !strings.Contains(link, n.Domain) {
		return false
	}

	for _, g := range n.globs {
		if g.Match(link) {
			return true
		}
	}

	return false
}

// FirstMatch returns the link of the first result pointing at a post on
// this network, or an empty string when none does.
func (n *Network) FirstMatch(results []search.Result) string {
	for _, r := range results {
		if n.MatchLink(r.Link) {
			return r.Link
		}
	}

	return ""
}

func (n *Network) validate() error {
	var errs error

	if n.Name == "" {
		errs = multierror.Append(errs, errors.New("missing name"))
	}

	if n.Domain == "" {
		errs = multierror.Append(errs, errors.New("missing domain"))
	}

	if len(n.PathGlobs) == 0 {
		errs = multierror.Append(errs, errors.New("missing paths"))
	}

	if n.TextColumn == "" {
		errs = multierror.Append(errs, errors.New("missing text column"))
	}

	if n.URLColumn == "" {
		errs = multierror.Append(errs, errors.New("missing url column"))
	}

	return errs
}

// LoadNetworks reads additional network definitions from a YAML file and
// compiles them. Every invalid definition is reported, not only the
// first one.
func LoadNetworks(path string) ([]Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read networks file '%s'", path)
	}

	var networks []Network
	if err := yaml.Unmarshal(data, &networks); err != nil {
		return nil, errors.Wrapf(err, "could not parse networks file '%s'", path)
	}

	var errs error
	for i := range networks {
		n := &networks[i]

		if err := n.validate(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "network #%d", i+1))
			continue
		}

		if err := n.Compile(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "network '%s'", n.Name))
		}
	}

	if errs != nil {
		return nil, errors.WithStack(errs)
	}

	return networks, nil
}
