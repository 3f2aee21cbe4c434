package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/xremap/internal/configpaths"
	"github.com/Alia5/xremap/internal/rulefile"
	"github.com/Alia5/xremap/internal/rules"
)

func rulesPath(p string) string {
	if p != "" {
		return p
	}
	return configpaths.DefaultRulesPath()
}

// loadTable reads and builds the rule table at path.
func loadTable(path string) (*rules.Table, error) {
	f, err := rulefile.Load(path)
	if err != nil {
		return nil, err
	}
	t, err := rules.Build(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func filterSummary(f rules.WindowFilter) (only, not string) {
	list := "[" + strings.Join(f.Classes(), ", ") + "]"
	switch f.Kind {
	case rules.FilterInclude:
		return list, "-"
	case rules.FilterExclude:
		return "-", list
	}
	return "-", "-"
}

func logTable(logger *slog.Logger, t *rules.Table) {
	logger.Info("Loaded rules", "groups", len(t.Groups()), "bindings", t.BindingCount(),
		"unknown_class", t.Policy().String())
	for i, g := range t.Groups() {
		only, not := filterSummary(g.Filter)
		logger.Info(fmt.Sprintf("Window rule %d", i),
			"class_only", only, "class_not", not, "remaps", len(g.Bindings))
	}
}
