package selection

import (
	"encoding/json"
	"strings"

	"vgc-go/packages/compiler/src/expression"
	"vgc-go/packages/compiler/src/log"
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
)

// selectionDomainMarker prefixes a provisional scale-domain signal whose
// payload cannot be resolved until every selection component is known.
const selectionDomainMarker = "_selection_domain_"

// domainPayload is the JSON payload following the marker.
type domainPayload struct {
	Selection string       `json:"selection"`
	Encoding  spec.Channel `json:"encoding,omitempty"`
	Field     string       `json:"field,omitempty"`
}

// SelectionDomainSignal encodes a provisional selection-driven scale domain.
// The scale compiler stashes this string; AssembleSelectionScaleDomain
// resolves it once selection parsing has finished.
func SelectionDomainSignal(selection string, encoding spec.Channel, field string) string {
	payload, _ := json.Marshal(domainPayload{Selection: selection, Encoding: encoding, Field: field})
	return selectionDomainMarker + string(payload)
}

// IsSelectionDomain reports whether a raw domain signal is a provisional
// selection-domain marker.
func IsSelectionDomain(raw string) bool {
	return strings.HasPrefix(raw, selectionDomainMarker)
}

// AssembleSelectionScaleDomain rewrites a provisional selection-domain
// signal to a concrete field-access expression on the selection's resolved
// state. Ambiguous payloads fall back to the selection's first projected
// field with a warning; a selection already bound to its scales supersedes
// this mechanism and the domain routes to its lifted per-channel signal
// instead; anything unresolvable yields the literal null expression.
func AssembleSelectionScaleDomain(m model.Model, raw string) string {
	payload := strings.TrimPrefix(raw, selectionDomainMarker)
	var dom domainPayload
	if err := json.Unmarshal([]byte(payload), &dom); err != nil {
		log.Warn("cannot parse selection scale domain %q: %v", raw, err)
		return "null"
	}
	sel := Lookup(m, dom.Selection)

	if len(sel.Project) == 0 {
		log.Warn("selection %q projects no fields; cannot derive a scale domain", sel.Name)
		return "null"
	}

	field := dom.Field
	if field == "" {
		if dom.Encoding != "" {
			entries := sel.ChannelEntries(dom.Encoding)
			switch len(entries) {
			case 1:
				field = entries[0].Field
			case 0:
				field = sel.Project[0].Field
				log.Warn("selection %q has no projection for encoding %q; using its first projected field %q",
					sel.Name, dom.Encoding, field)
			default:
				field = sel.Project[0].Field
				log.Warn("selection %q projects encoding %q more than once; using its first projected field %q",
					sel.Name, dom.Encoding, field)
			}
		} else {
			field = sel.Project[0].Field
			if len(sel.Project) > 1 {
				log.Warn("selection %q projects multiple fields and no field or encoding was given; defaulting to %q",
					sel.Name, field)
			}
		}
	}
	if sel.BindsScales() {
		// The scale-bindings transform already feeds this selection's state
		// into its scales through lifted per-channel signals; the domain
		// must reference that signal, not the selection store.
		log.Warn("selection %q is bound to scales and supersedes the domain reference; using its %q domain signal",
			sel.Name, field)
		for _, p := range sel.Project {
			if p.Field == field {
				return sel.Name + "_" + tupleField(p)
			}
		}
		return sel.Name + "_" + field
	}
	return expression.NewFieldAccess(sel.Name, field).Render()
}
