package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// getResultFolder returns <results>/<symbol>_<first>_<last> for a run whose bars span first to last.
func getResultFolder(resultsFolder string, symbol string, first time.Time, last time.Time) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(symbol)

	return filepath.Join(resultsFolder, fmt.Sprintf("%s_%s_%s", name, first.Format("20060102"), last.Format("20060102")))
}
