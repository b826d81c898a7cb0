package manifest

import "strings"

// Binder indexes a Manifest by audioKey once so repeated per-block lookups
// during compilation are O(1) instead of O(n).
type Binder struct {
	entries   Manifest
	byKey     map[string]Entry
}

// NewBinder builds a Binder over a fully-realized manifest.
func NewBinder(entries Manifest) *Binder {
	byKey := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.AudioKey != "" {
			byKey[e.AudioKey] = e
		}
	}
	return &Binder{entries: entries, byKey: byKey}
}

// Bind resolves one dialogue block's manifest entry using the binding
// order spec §4.4 step 2 and §6 require: (a) a fileName hint that equals
// or is a substring of some entry's audioSrc, (b) an entry whose audioKey
// equals the explicit or derived key. Binding never falls back to
// matching by text — duplicate lines share texts and would bind wrong
// (spec §9 design note, P5).
func (b *Binder) Bind(fileNameHint, key string) (Entry, bool) {
	if fileNameHint != "" {
		for _, e := range b.entries {
			if e.AudioSrc == fileNameHint || strings.Contains(e.AudioSrc, fileNameHint) {
				return e, true
			}
		}
	}

	if e, ok := b.byKey[key]; ok {
		return e, true
	}

	return Entry{}, false
}
