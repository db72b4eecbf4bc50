// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package themecss

import (
	"sort"
	"sync"

	"themeforge/internal/models"
)

// Target is a document the applier writes to: root custom properties plus
// the managed head elements.
type Target interface {
	SetProperty(name, value string)
	HeadElement(id string) (HeadElement, bool)
	UpsertHeadElement(el HeadElement)
	RemoveHeadElement(id string)
}

// Applier writes projections to a Target. Library holds uploaded fonts
// that snapshots may reference by id without embedding them.
type Applier struct {
	Library []models.LocalFontAsset
}

// managedIDs are the head elements the applier owns.
var managedIDs = []string{GoogleFontsLinkID, LocalFontsStyleID}

// Apply projects s onto t and returns the projection. Property writes are
// plain overwrites; head elements are only touched when their content
// changes, so calling Apply repeatedly with the same snapshot is safe.
func (a *Applier) Apply(t Target, s *models.Snapshot) Projection {
	p := Resolve(s, a.Library)
	for _, prop := range p.Properties {
		t.SetProperty(prop.Name, prop.Value)
	}

	want := make(map[string]HeadElement, len(managedIDs))
	for _, el := range p.HeadElements() {
		want[el.ID] = el
	}
	for _, id := range managedIDs {
		el, needed := want[id]
		current, exists := t.HeadElement(id)
		switch {
		case needed && (!exists || current != el):
			t.UpsertHeadElement(el)
		case !needed && exists:
			t.RemoveHeadElement(id)
		}
	}
	return p
}

// Document is an in-memory Target. It records how many head mutations it
// has seen so callers can check that re-applying is a no-op.
type Document struct {
	mu            sync.Mutex
	props         map[string]string
	head          map[string]HeadElement
	headMutations int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{props: make(map[string]string), head: make(map[string]HeadElement)}
}

func (d *Document) SetProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.props[name] = value
}

func (d *Document) HeadElement(id string) (HeadElement, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.head[id]
	return el, ok
}

func (d *Document) UpsertHeadElement(el HeadElement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.head[el.ID] = el
	d.headMutations++
}

func (d *Document) RemoveHeadElement(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.head, id)
	d.headMutations++
}

// Property returns the current value of a root custom property.
func (d *Document) Property(name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.props[name]
	return v, ok
}

// Properties returns a copy of all root custom properties.
func (d *Document) Properties() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.props))
	for k, v := range d.props {
		out[k] = v
	}
	return out
}

// HeadIDs lists the head element ids present, sorted.
func (d *Document) HeadIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, 0, len(d.head))
	for id := range d.head {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HeadMutations counts head element inserts, updates and removals.
func (d *Document) HeadMutations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.headMutations
}
