// Package badges renders the three launch badges expected in the first cell
// of every published notebook.
package badges

import "fmt"

const (
	previewBadgeSVG  = "https://img.shields.io/static/v1?label=render%20on&logo=github&color=87ce3e&message=GitHub"
	mybinderBadgeSVG = "https://mybinder.org/badge_logo.svg"
	colabBadgeSVG    = "https://colab.research.google.com/assets/colab-badge.svg"
)

// Repo identifies the GitHub repository the notebooks are published from.
type Repo struct {
	Owner string
	Name  string
}

// Preview returns the GitHub preview badge for the notebook at the
// repository-relative path.
func Preview(path string, repo Repo) string {
	link := fmt.Sprintf("https://github.com/%s/%s/blob/main/%s", repo.Owner, repo.Name, path)
	return fmt.Sprintf("[![preview notebook](%s)](%s)", previewBadgeSVG, link)
}

// MyBinder returns the mybinder launch badge.
func MyBinder(path string, repo Repo) string {
	link := fmt.Sprintf("https://mybinder.org/v2/gh/%s/%s.git/main?urlpath=lab/tree/%s", repo.Owner, repo.Name, path)
	return fmt.Sprintf("[![launch on mybinder.org](%s)](%s)", mybinderBadgeSVG, link)
}

// Colab returns the Colab launch badge.
func Colab(path string, repo Repo) string {
	link := fmt.Sprintf("https://colab.research.google.com/github/%s/%s/blob/main/%s", repo.Owner, repo.Name, path)
	return fmt.Sprintf("[![launch on Colab](%s)](%s)", colabBadgeSVG, link)
}

// Expected returns the preview, mybinder, and Colab badges in canonical order.
func Expected(path string, repo Repo) []string {
	return []string{
		Preview(path, repo),
		MyBinder(path, repo),
		Colab(path, repo),
	}
}

// Labels names the badges returned by Expected, in the same order.
var Labels = []string{"GitHub preview", "MyBinder", "Colab"}

// Markdown joins the expected badges into first-cell markdown source.
func Markdown(path string, repo Repo) string {
	lines := Expected(path, repo)
	return lines[0] + "\n" + lines[1] + "\n" + lines[2]
}
