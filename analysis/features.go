package analysis

import (
	"sort"

	"github.com/dream-lang/dream-go/ast"
)

// Edge links an item to a feature or predicate its cfg attributes reference.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

// CoverageReport compares referenced features with the enabled ones.
type CoverageReport struct {
	UsedFeatures         []string `json:"used_features"`
	DisabledFeatures     []string `json:"disabled_features"`
	UnreferencedFeatures []string `json:"unreferenced_features"`
}

// FeatureGraph captures which items are gated on which features.
type FeatureGraph struct {
	Items    []string       `json:"items"`
	Features []string       `json:"features"`
	Edges    []Edge         `json:"edges"`
	Coverage CoverageReport `json:"coverage"`
}

// BuildFeatureGraph builds the item/feature graph and a coverage report
// against the enabled feature names.
func BuildFeatureGraph(items []ast.Item, enabled []string) FeatureGraph {
	graph := FeatureGraph{}
	used := make(map[string]struct{})

	for _, item := range items {
		from := item.Kind + ":" + item.Name
		graph.Items = append(graph.Items, from)

		features, testGated := collectItemUsage(item)
		for _, feature := range sortedKeys(features) {
			used[feature] = struct{}{}
			graph.Edges = append(graph.Edges, Edge{
				From: from,
				To:   "feature:" + feature,
				Kind: "feature",
			})
		}
		if testGated {
			graph.Edges = append(graph.Edges, Edge{From: from, To: "test", Kind: "test"})
		}
	}

	graph.Features = sortedKeys(used)
	graph.Coverage = buildCoverageReport(used, enabled)
	return graph
}

func buildCoverageReport(used map[string]struct{}, enabled []string) CoverageReport {
	report := CoverageReport{}

	on := make(map[string]struct{}, len(enabled))
	for _, name := range enabled {
		on[name] = struct{}{}
	}

	for feature := range used {
		report.UsedFeatures = append(report.UsedFeatures, feature)
		if _, ok := on[feature]; !ok {
			report.DisabledFeatures = append(report.DisabledFeatures, feature)
		}
	}

	for feature := range on {
		if _, ok := used[feature]; !ok {
			report.UnreferencedFeatures = append(report.UnreferencedFeatures, feature)
		}
	}

	sort.Strings(report.UsedFeatures)
	sort.Strings(report.DisabledFeatures)
	sort.Strings(report.UnreferencedFeatures)
	return report
}

// collectItemUsage returns the features referenced by the item's cfg
// attributes and whether any of them mentions the test predicate.
func collectItemUsage(item ast.Item) (map[string]struct{}, bool) {
	features := make(map[string]struct{})
	testGated := false

	var walk func(term ast.Term)
	walk = func(term ast.Term) {
		switch t := term.(type) {
		case ast.Ident:
			if t.Name == "test" {
				testGated = true
			}
		case ast.KeyValue:
			if t.Key == "feature" {
				features[t.Value] = struct{}{}
			}
		case ast.Nested:
			for _, arg := range t.Args {
				walk(arg)
			}
		}
	}

	for _, attr := range item.Attrs {
		if attr.Name != "cfg" {
			continue
		}
		if args, ok := attr.Args.(ast.ParenArgs); ok {
			for _, term := range args.Terms {
				walk(term)
			}
		}
	}
	return features, testGated
}

func sortedKeys(values map[string]struct{}) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
