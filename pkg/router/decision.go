package router

// Step records the evaluation of one rule while classifying a request.
type Step struct {
	Rule     string `json:"rule"`
	Priority int    `json:"priority"`
	Matched  bool   `json:"matched"`
}

// Decision captures the outcome of routing a single change request.
type Decision struct {
	// Agent is the profile the request was routed to.
	Agent string `json:"agent"`
	// Reason is the rationale recorded on the matched rule.
	Reason string `json:"reason"`
	// Rule and Priority identify the matched rule.
	Rule     string `json:"rule"`
	Priority int    `json:"priority"`
	// Tier is the matched profile's policy tier, when the router has a
	// profile registry to consult.
	Tier string `json:"tier,omitempty"`
	// Trace lists every rule consulted, in evaluation order, ending with
	// the matched rule.
	Trace []Step `json:"trace,omitempty"`
}
