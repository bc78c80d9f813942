package recommend

import "github.com/poiesic/cinerec/core"

// SelectStrategy routes an intent to a retrieval strategy. A concrete title
// always wins, even when the intent also carries genres or keywords; the
// anchor movie's own attributes are richer than whatever the request named
// alongside it. Everything else goes through category matching.
func SelectStrategy(intent *core.Intent) core.Strategy {
	if intent != nil && intent.HasTitle() {
		return core.StrategyTitle
	}
	return core.StrategyCategory
}
