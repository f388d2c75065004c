// SPDX-License-Identifier: EPL-2.0

package storage

import "strings"

// FlashPrefix selects the internal flash medium. Every other path lives on
// the card.
const FlashPrefix = "/flash/"

// Router picks the medium a path refers to.
type Router struct {
	Flash *Medium
	Card  *Medium
}

// Resolve returns the medium for path and the path within it. ok is false
// when that medium is not configured.
func (r *Router) Resolve(path string) (m *Medium, name string, flash bool, ok bool) {
	if rest, found := strings.CutPrefix(path, FlashPrefix); found {
		return r.Flash, "/" + rest, true, r.Flash != nil
	}
	return r.Card, path, false, r.Card != nil
}
