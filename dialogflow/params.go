package dialogflow

// Params is the loosely-typed slot parameter bag supplied by the
// platform. Historical agent revisions used different names for the
// same semantic slot, so slots are resolved through an ordered alias
// list rather than a single key.
type Params map[string]any

// First returns the value of the highest-priority alias holding a
// non-empty string. Non-string values are skipped rather than coerced.
// The empty string is the missing-slot sentinel.
func (p Params) First(aliases ...string) string {
	for _, alias := range aliases {
		if s, ok := p[alias].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// FirstOr is First with a default for when every alias is absent or
// empty.
func (p Params) FirstOr(def string, aliases ...string) string {
	if v := p.First(aliases...); v != "" {
		return v
	}
	return def
}
