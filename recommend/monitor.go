package recommend

import "github.com/poiesic/cinerec/core"

// Monitor provides hooks to observe the recommendation process.
// Implement this interface to stream intermediate stages to a user while a
// request is being worked. The engine drives the routing, anchor, and
// scoring hooks; callers that own the surrounding stages drive the rest.
type Monitor interface {
	Start(request string)
	AfterExtraction(intent *core.Intent)
	AfterRouting(strategy core.Strategy)
	AnchorResolved(anchor *core.Movie)
	AnchorMiss(title string)
	AfterScoring(candidates int)
	AfterJustification(annotated int)
	Finish(result *core.RankedResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterExtraction(_ *core.Intent)    {}
func (n *noopMonitor) AfterRouting(_ core.Strategy)      {}
func (n *noopMonitor) AnchorResolved(_ *core.Movie)      {}
func (n *noopMonitor) AnchorMiss(_ string)               {}
func (n *noopMonitor) AfterScoring(_ int)                {}
func (n *noopMonitor) AfterJustification(_ int)          {}
func (n *noopMonitor) Finish(_ *core.RankedResult)       {}

// NopMonitor returns a Monitor that ignores every hook. Useful as a default
// for callers that thread a monitor through optional plumbing.
func NopMonitor() Monitor {
	return &noopMonitor{}
}
