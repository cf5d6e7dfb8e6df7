package intent

import "github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"

// Classify maps text onto at most one primary request plus any overlay
// requests. Without a non-empty selection nothing is classified.
//
// A primary rule whose predicate matches but which cannot build a request
// (for example a column action on a single-row selection) still ends the
// primary search.
func Classify(text string, snap *models.SelectionSnapshot) Result {
	var result Result
	if snap.IsEmpty() {
		return result
	}

	for _, r := range primaryRules {
		if !r.match(text) {
			continue
		}
		if req, ok := r.build(text, snap); ok {
			req.Rule = r.name
			result.Primary = &req
		}
		break
	}

	for _, r := range overlayRules {
		if !r.match(text) {
			continue
		}
		if req, ok := r.build(text, snap); ok {
			req.Rule = r.name
			result.Overlays = append(result.Overlays, req)
		}
	}

	return result
}

// RuleNames lists primary then overlay rule names in evaluation order.
func RuleNames() []string {
	names := make([]string, 0, len(primaryRules)+len(overlayRules))
	for _, r := range primaryRules {
		names = append(names, r.name)
	}
	for _, r := range overlayRules {
		names = append(names, r.name)
	}
	return names
}
