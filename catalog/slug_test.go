package catalog_test

import (
	"testing"

	"github.com/goliatone/go-shaker/catalog"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{title: "Intro", want: "intro"},
		{title: "Linear Equations", want: "linear-equations"},
		// Non-ASCII letters are dropped, not transliterated.
		{title: "Equació de Segon Grau", want: "equaci-de-segon-grau"},
		{title: "Already-Hyphenated Name", want: "already-hyphenated-name"},
		{title: "Números (2ª part)", want: "nmeros--part"},
		{title: "", want: ""},
		{title: "!!!", want: ""},
	}

	for _, tc := range cases {
		if got := catalog.Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
