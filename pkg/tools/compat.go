package tools

import (
	"context"

	"github.com/isitobservable/opensearch-query-mcp/pkg/opensearch"
	"github.com/isitobservable/opensearch-query-mcp/pkg/types"
	"github.com/isitobservable/opensearch-query-mcp/pkg/version"
)

// rangeText composes the human-readable supported-range fragment used in
// compatibility rejections.
func rangeText(min, max string) string {
	switch {
	case min != "" && max != "":
		return min + " to " + max
	case min != "":
		return min + " or later"
	case max != "":
		return "up to " + max
	default:
		return ""
	}
}

// CheckCompatibility verifies the cluster's reported version against the
// named tool's declared bounds. Unparsable versions fail the check rather
// than silently passing.
func (r *Registry) CheckCompatibility(name, clusterVersion string) error {
	d, err := r.Get(name)
	if err != nil {
		return err
	}
	if d.MinVersion == "" && d.MaxVersion == "" {
		return nil
	}
	ok, err := version.InRange(clusterVersion, d.MinVersion, d.MaxVersion)
	if err != nil {
		return err
	}
	if !ok {
		display := d.DisplayName
		if display == "" {
			display = d.Name
		}
		return &types.CompatibilityError{
			Tool:    display,
			Current: clusterVersion,
			Range:   rangeText(d.MinVersion, d.MaxVersion),
		}
	}
	return nil
}

// checkCompatibility is the gate every handler runs before its upstream
// call: it probes the target cluster's version and consults the registry
// entry. The probe is fetched per check, never cached across invocations.
func (t *Toolset) checkCompatibility(ctx context.Context, name string, api opensearch.API) error {
	d, err := t.registry.Get(name)
	if err != nil {
		return err
	}
	if d.MinVersion == "" && d.MaxVersion == "" {
		return nil
	}
	ver, err := api.Version(ctx)
	if err != nil {
		return err
	}
	return t.registry.CheckCompatibility(name, ver)
}
