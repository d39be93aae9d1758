// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides the key types used when sources write raw config values.
//
// Flat sources like .env files only ever produce a single [Name]. Nested sources,
// e.g. YAML or JSON documents, produce a [Chain] which is flattened into a single
// dotted key once it is stored in a config map.
package key

import (
	"strings"
)

// Separator joins the elements of a [Chain] into a flat map key.
const Separator = "."

// Keyer is a common interface all value key types must implement.
type Keyer interface {
	Key() string
}

// Name represents a single, already flat key.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Chain represents nested keys, outermost first.
type Chain []Keyer

// Key implements the [Keyer] interface.
func (k Chain) Key() string {
	ss := make([]string, 0, len(k))
	for _, kr := range k {
		s := kr.Key()
		if len(s) == 0 {
			continue
		}
		ss = append(ss, s)
	}
	return strings.Join(ss, Separator)
}

// Append returns a new Chain with kr appended. The receiver is never modified
// which makes it safe to share a parent Chain between siblings.
func (k Chain) Append(kr Keyer) Chain {
	chain := make(Chain, len(k), len(k)+1)
	copy(chain, k)
	return append(chain, kr)
}
