// Package enrich post-processes g:Profiler over-representation results:
// source validation, FDR thresholding, significance sorting, and derivation
// of the display column of intersecting genes.
package enrich

// Config carries the allow-lists used to sanity-check requested organisms and
// annotation sources. Both lists are local approximations of what the remote
// service supports, so membership is advisory: unknown values are warned
// about, never rejected. A Config is created once per run and not mutated.
type Config struct {
	KnownOrganisms map[string]struct{}
	KnownSources   map[string]struct{}
}

// DefaultConfig lists the organisms and sources the tool has been used with.
func DefaultConfig() Config {
	return Config{
		KnownOrganisms: stringSet(
			"hsapiens", "mmusculus", "rnorvegicus", "drerio",
			"athaliana", "scerevisiae", "dmelanogaster",
		),
		KnownSources: stringSet(
			"GO:BP", "GO:MF", "GO:CC",
			"REAC", "WP", "HP", "MIRNA", "TF", "CORUM",
			"KEGG",
		),
	}
}

// KnownOrganism reports whether the organism code is on the local list.
func (c Config) KnownOrganism(organism string) bool {
	_, exists := c.KnownOrganisms[organism]
	return exists
}

// PartitionSources splits the requested sources into recognized and
// unrecognized subsets, preserving request order. When none are recognized,
// the full requested list is returned as valid so that an entirely
// unrecognized request is still forwarded to the service, which has the final
// say on what it supports.
func (c Config) PartitionSources(requested []string) (valid, unknown []string) {
	valid = make([]string, 0, len(requested))
	unknown = make([]string, 0)

	for _, source := range requested {
		if _, exists := c.KnownSources[source]; exists {
			valid = append(valid, source)
		} else {
			unknown = append(unknown, source)
		}
	}

	if len(valid) == 0 {
		valid = requested
	}

	return valid, unknown
}

func stringSet(members ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}

	return set
}
