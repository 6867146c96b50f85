package chartdata

// Alias priority lists for heterogeneous field naming. First match wins.
var (
	timeAliases   = []string{"t", "time", "timestamp", "date", "datetime"}
	openAliases   = []string{"o", "open", "opening"}
	highAliases   = []string{"h", "high", "highest"}
	lowAliases    = []string{"l", "low", "lowest"}
	closeAliases  = []string{"c", "close", "closing"}
	volumeAliases = []string{"v", "vol", "volume"}
	valueAliases  = []string{"value", "val", "y", "data"}
	labelAliases  = []string{"label", "name", "category", "x"}
	sourceAliases = []string{"source", "from"}
	targetAliases = []string{"target", "to"}
	weightAliases = []string{"value", "weight"}
)

// lookupAlias returns the first aliased field present in the record.
func lookupAlias(record map[string]any, aliases []string) (any, bool) {
	for _, key := range aliases {
		if v, ok := record[key]; ok {
			return v, true
		}
	}
	return nil, false
}
