package icons

import (
	"embed"
	"io/fs"
	"strings"
)

type Category string

const (
	Sun     Category = "sun"
	Cloud   Category = "cloud"
	Rain    Category = "rain"
	Snow    Category = "snow"
	Unknown Category = "unknown"
)

var Categories = []Category{Sun, Cloud, Rain, Snow, Unknown}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// FileName is the asset file for the category, e.g. "sun.svg".
func (c Category) FileName() string {
	if !c.Valid() {
		c = Unknown
	}
	return string(c) + ".svg"
}

// Rules are checked in order; the first match wins.
var rules = []struct {
	category Category
	needles  []string
}{
	{Sun, []string{"sun", "clear"}},
	{Cloud, []string{"cloud", "overcast"}},
	{Rain, []string{"rain", "drizzle", "showers"}},
	{Snow, []string{"snow", "sleet", "flurr"}},
}

// Classify maps free-text conditions such as "Partially cloudy" onto a
// category.
func Classify(text string) Category {
	c := strings.ToLower(text)
	if c == "" {
		return Unknown
	}
	for _, r := range rules {
		for _, n := range r.needles {
			if strings.Contains(c, n) {
				return r.category
			}
		}
	}
	return Unknown
}

//go:embed assets/*.svg
var assets embed.FS

// Assets is the bundled icon set, one <category>.svg per category.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
