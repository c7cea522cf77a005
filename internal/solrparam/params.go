// Package solrparam provides the ordered, multi-valued parameter map used
// to assemble an outbound Solr select request (§6.2, §9's "Multi-valued
// parameter maps" translation note).
package solrparam

import "net/url"

// Params is an insertion-order-preserving multi-valued map. Solr accepts
// repeated query keys (fq, facet.field, ...) and cares about the order a
// request declared them in (P1); plain url.Values loses key order, so this
// type keeps its own key sequence alongside the value lists.
type Params struct {
	keys   []string
	values map[string][]string
}

// New returns an empty Params.
func New() *Params {
	return &Params{values: make(map[string][]string)}
}

// Set replaces all values for key with a single value, recording key's
// position the first time it is seen.
func (p *Params) Set(key, value string) {
	p.ensureKey(key)
	p.values[key] = []string{value}
}

// Add appends value to key's value list, recording key's position the
// first time it is seen. Use Add for Solr's multi-valued keys (fq,
// facet.field, facet.range, facet.query).
func (p *Params) Add(key, value string) {
	p.ensureKey(key)
	p.values[key] = append(p.values[key], value)
}

func (p *Params) ensureKey(key string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
}

// Get returns the first value for key, or "" if key is absent.
func (p *Params) Get(key string) string {
	vs := p.values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Values returns all values for key in insertion order.
func (p *Params) Values(key string) []string {
	return p.values[key]
}

// Has reports whether key has at least one value.
func (p *Params) Has(key string) bool {
	return len(p.values[key]) > 0
}

// Keys returns every key in the order it was first set or added.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Encode converts Params into url.Values for an outbound HTTP request.
// Key order is not preserved by url.Values itself, but each key's value
// list retains its insertion order.
func (p *Params) Encode() url.Values {
	out := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		out[k] = append([]string(nil), p.values[k]...)
	}
	return out
}
