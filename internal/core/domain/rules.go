package domain

// Rule gates a library or argument token on platform and feature constraints.
type Rule struct {
	// Action is "allow" or "disallow".
	Action   string          `json:"action"`
	OS       *OSRule         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OSRule constrains a rule to an operating system.
type OSRule struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

// RulesAllow evaluates a rule list against the platform and feature set.
//
// Rules are scanned in order. A rule matches when its OS constraint (if any)
// matches the platform and all of its feature constraints match the feature
// set. A matching "disallow" short-circuits to false. The result is true iff
// the list was empty or at least one "allow" matched: default deny unless
// explicitly allowed. This is compatibility-sensitive; real descriptor data
// relies on it to select per-OS natives and arguments.
func RulesAllow(rules []Rule, p Platform, features map[string]bool) bool {
	if len(rules) == 0 {
		return true
	}

	allowed := false
	for _, r := range rules {
		if !ruleMatches(r, p, features) {
			continue
		}
		if r.Action == "disallow" {
			return false
		}
		allowed = true
	}
	return allowed
}

func ruleMatches(r Rule, p Platform, features map[string]bool) bool {
	if r.OS != nil {
		if r.OS.Name != "" && r.OS.Name != p.OS {
			return false
		}
		if r.OS.Arch != "" && r.OS.Arch != p.Arch {
			return false
		}
	}
	for name, want := range r.Features {
		if features[name] != want {
			return false
		}
	}
	return true
}
