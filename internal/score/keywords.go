// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/groundwork/econ-digest/pkg/types"
)

// keywordsFile is the on-disk representation of a keyword set. Entries may
// be plain strings (weight 1) or term/weight mappings.
type keywordsFile struct {
	Keywords []keywordEntry `yaml:"keywords"`
}

// keywordEntry accepts either a scalar term or a {term, weight} mapping.
type keywordEntry struct {
	types.Keyword
}

func (e *keywordEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Term = node.Value
		return nil
	}
	return node.Decode(&e.Keyword)
}

// LoadFile reads a keyword set from a YAML file and validates it.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading keywords file: %w", err)
	}

	var kf keywordsFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return Set{}, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}

	set := Set{Keywords: make([]types.Keyword, 0, len(kf.Keywords))}
	for _, e := range kf.Keywords {
		set.Keywords = append(set.Keywords, e.Keyword)
	}

	if err := set.Validate(); err != nil {
		return Set{}, fmt.Errorf("keywords file %s: %w", path, err)
	}
	return set, nil
}

// Default returns the builtin keyword set: terms tracking corporate power
// and pricing, housing, labor, inequality, household costs, and economic
// policy. All weights are 1.
func Default() Set {
	terms := []string{
		// Corporate power & pricing
		"price", "pricing", "markup", "profit", "corporate", "concentration",
		"monopoly", "antitrust", "market power", "oligopoly", "merger",
		"gouging", "inflation",

		// Housing
		"housing", "rent", "mortgage", "landlord", "eviction", "tenant",
		"homeowner", "affordability", "real estate", "financialization",

		// Labor & wages
		"wage", "labor", "worker", "employment", "unemployment", "union",
		"minimum wage", "gig economy", "collective bargaining", "strike",

		// Inequality & distribution
		"inequality", "wealth", "income distribution", "poverty", "mobility",
		"racial", "gender gap", "disparity", "progressive",

		// Consumer & household
		"consumer", "household", "debt", "credit", "family", "childcare",
		"healthcare cost", "food price", "grocery",

		// Policy
		"tax", "fiscal", "subsidy", "regulation", "enforcement",
		"competition policy", "industrial policy",
	}

	set := Set{Keywords: make([]types.Keyword, 0, len(terms))}
	for _, t := range terms {
		set.Keywords = append(set.Keywords, types.Keyword{Term: t})
	}
	return set
}
