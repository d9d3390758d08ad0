package header

import (
	"fmt"
	"regexp"
	"strings"
)

// HelperPackage is the pip distribution the bootstrap cell installs.
const HelperPackage = "open-atmos-jupyter-utils"

// markers must all appear in a cell's source for it to count as the header.
var markers = []string{
	"install " + HelperPackage,
	"google.colab",
	"pip_install_on_colab",
}

var installCallRE = regexp.MustCompile(
	`pip_install_on_colab\(\s*` +
		`['"](?P<examples>[^'"]+)['"]\s*,\s*` +
		`['"](?P<main>[^'"]+)['"]\s*\)`,
)

const template = `import os, sys
os.environ['NUMBA_THREADING_LAYER'] = 'workqueue'  # PySDM & PyMPDATA don't work with TBB; OpenMP has extra dependencies on macOS
if 'google.colab' in sys.modules:
    !pip --quiet install %[1]s
    from %[2]s import pip_install_on_colab
    pip_install_on_colab('%[3]s-examples%[4]s', '%[3]s%[4]s')`

// Looks reports whether source carries every bootstrap marker.
func Looks(source string) bool {
	for _, m := range markers {
		if !strings.Contains(source, m) {
			return false
		}
	}
	return true
}

// Build renders the canonical bootstrap source for pkg pinned with version,
// which is appended verbatim (for example "==2.31" or "").
func Build(pkg, version string) string {
	module := strings.ReplaceAll(HelperPackage, "-", "_")
	return fmt.Sprintf(template, HelperPackage, module, pkg, version)
}

// ExtractVersions returns the version suffixes following "<pkg>-examples"
// and "<pkg>" in the pip_install_on_colab call. ok is false when the call is
// absent or either argument does not start with the expected name.
func ExtractVersions(source, pkg string) (examples, main string, ok bool) {
	m := installCallRE.FindStringSubmatch(source)
	if m == nil {
		return "", "", false
	}
	examplesPkg := m[installCallRE.SubexpIndex("examples")]
	mainPkg := m[installCallRE.SubexpIndex("main")]

	examplesPrefix := pkg + "-examples"
	if !strings.HasPrefix(examplesPkg, examplesPrefix) || !strings.HasPrefix(mainPkg, pkg) {
		return "", "", false
	}
	return examplesPkg[len(examplesPrefix):], mainPkg[len(pkg):], true
}

// ResolveVersion picks the version the canonical header should carry: the
// one already in the notebook, else the supplied fallback, else "".
func ResolveVersion(existing, fallback string) string {
	if existing != "" {
		return existing
	}
	if fallback != "" {
		return fallback
	}
	return ""
}
