package rettiwt

import (
	"fmt"

	"github.com/omarcinkonis/rettiwt-go/jsontree"
)

// cursorKey/cursorBottom identify the forward pagination marker. Responses
// may carry several cursor objects (top and bottom of each list region);
// the bottom one appears first in traversal order for every supported
// resource, so the first match wins.
const (
	cursorKey    = "cursorType"
	cursorBottom = "Bottom"
)

// extract pulls raw entity fragments and the next-page cursor out of a
// response tree. Fragments come back in document traversal order, already
// unwrapped from their timeline containers where the resource requires it.
// Single-entity resources always return an empty cursor.
func extract(tree *jsontree.Value, res Resource) ([]*jsontree.Value, string) {
	ex, ok := extractors[res]
	if !ok {
		panic(fmt.Sprintf("rettiwt: no extractor registered for resource %q", res))
	}

	var frags []*jsontree.Value
	for _, d := range ex.fragments {
		for _, match := range jsontree.Search(tree, d.key, d.value) {
			if len(d.project) > 0 {
				inner := match.Get(d.project...)
				if inner == nil {
					continue
				}
				match = inner
			}
			frags = append(frags, match)
		}
	}

	if !ex.collection {
		return frags, ""
	}
	next := ""
	if marker := jsontree.First(tree, cursorKey, cursorBottom); marker != nil {
		next = marker.StringField("value")
	}
	return frags, next
}
