// Package assets embeds the pre-built HTML front-ends served by the process:
// the customer site, the management panel and the public menu page.
package assets

import "embed"

//go:embed html
var pages embed.FS

// Page returns one embedded HTML document by file name.
func Page(name string) ([]byte, error) {
	return pages.ReadFile("html/" + name)
}
