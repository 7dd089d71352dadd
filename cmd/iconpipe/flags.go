package main

import (
	"fmt"
	"strings"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/features"
)

// applyFeatureFlags накладывает -enable/-disable поверх features из конфига.
//
// Изменения идут через features.Enable, поэтому включение kebabCase
// включает и standardization.
func applyFeatureFlags(f features.Features, enable, disable string) (features.Features, error) {
	for _, pair := range []struct {
		list  string
		value bool
	}{{enable, true}, {disable, false}} {
		names, err := parseFeatureList(pair.list)
		if err != nil {
			return f, err
		}
		for _, n := range names {
			f = features.Enable(f, n, pair.value)
		}
	}
	return f, nil
}

func parseFeatureList(list string) ([]features.Name, error) {
	known := make(map[string]features.Name)
	for _, n := range features.All() {
		known[strings.ToLower(string(n))] = n
	}

	var out []features.Name
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n, ok := known[strings.ToLower(raw)]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", raw)
		}
		out = append(out, n)
	}
	return out, nil
}
