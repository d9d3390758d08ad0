package checks

import (
	"strings"

	"nbhooks/internal/findings"
	"nbhooks/internal/notebook"
)

var (
	plotShowCalls = []string{"pyplot.show(", "plt.show("}
	plotWrapper   = "show_plot("
	animationUses = []string{"FuncAnimation", "matplotlib.animation", "from matplotlib import animation"}
	animWrapper   = "show_anim("
)

// ShowPlotUsed fails when a code cell calls matplotlib's show directly and no
// cell calls open_atmos_jupyter_utils.show_plot().
func ShowPlotUsed(nb *notebook.Notebook) error {
	if usesAny(nb, plotShowCalls) && !usesAny(nb, []string{plotWrapper}) {
		return findings.New(findings.ErrMissingHelperWrapper, "show-plot",
			"if using matplotlib, please use open_atmos_jupyter_utils.show_plot()")
	}
	return nil
}

// ShowAnimUsed fails when a code cell builds a matplotlib animation and no
// cell calls open_atmos_jupyter_utils.show_anim().
func ShowAnimUsed(nb *notebook.Notebook) error {
	if usesAny(nb, animationUses) && !usesAny(nb, []string{animWrapper}) {
		return findings.New(findings.ErrMissingHelperWrapper, "show-anim",
			"if using matplotlib for animations, please use open_atmos_jupyter_utils.show_anim()")
	}
	return nil
}

func usesAny(nb *notebook.Notebook, needles []string) bool {
	for _, cell := range nb.Cells {
		if !cell.IsCode() {
			continue
		}
		for _, n := range needles {
			if strings.Contains(cell.Source, n) {
				return true
			}
		}
	}
	return false
}
