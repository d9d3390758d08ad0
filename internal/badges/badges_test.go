package badges

import (
	"strings"
	"testing"
)

func TestExpectedBadges(t *testing.T) {
	repo := Repo{Owner: "open-atmos", Name: "PySDM"}
	path := "examples/PySDM_examples/Arabas_et_al_2015/demo.ipynb"

	got := Expected(path, repo)
	want := []string{
		"[![preview notebook](https://img.shields.io/static/v1?label=render%20on&logo=github&color=87ce3e&message=GitHub)](https://github.com/open-atmos/PySDM/blob/main/examples/PySDM_examples/Arabas_et_al_2015/demo.ipynb)",
		"[![launch on mybinder.org](https://mybinder.org/badge_logo.svg)](https://mybinder.org/v2/gh/open-atmos/PySDM.git/main?urlpath=lab/tree/examples/PySDM_examples/Arabas_et_al_2015/demo.ipynb)",
		"[![launch on Colab](https://colab.research.google.com/assets/colab-badge.svg)](https://colab.research.google.com/github/open-atmos/PySDM/blob/main/examples/PySDM_examples/Arabas_et_al_2015/demo.ipynb)",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d badges, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("badge %d mismatch:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
	if len(Labels) != len(got) {
		t.Fatalf("labels out of sync with badges: %d vs %d", len(Labels), len(got))
	}
}

func TestBadgesAreDeterministic(t *testing.T) {
	repo := Repo{Owner: "o", Name: "n"}
	if Preview("a.ipynb", repo) != Preview("a.ipynb", repo) {
		t.Fatal("expected identical output for identical input")
	}
}

func TestMalformedPathYieldsMalformedURL(t *testing.T) {
	got := Colab("../weird path.ipynb", Repo{Owner: "o", Name: "n"})
	if !strings.HasSuffix(got, "/blob/main/../weird path.ipynb)") {
		t.Fatalf("expected path to be embedded verbatim, got %q", got)
	}
}

func TestMarkdownJoinsThreeLines(t *testing.T) {
	md := Markdown("x.ipynb", Repo{Owner: "o", Name: "n"})
	if strings.Count(md, "\n") != 2 {
		t.Fatalf("expected three lines, got %q", md)
	}
	if !strings.HasPrefix(md, "[![preview notebook]") {
		t.Fatalf("expected preview badge first, got %q", md)
	}
}
