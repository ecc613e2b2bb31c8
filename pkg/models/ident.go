package models

// Ident carries the canonical record id. The document store also emits `$id`;
// it is accepted on decode and folded into ID by ResolveID.
type Ident struct {
	ID       string `json:"id"`
	LegacyID string `json:"$id,omitempty"`
}

// ResolveID copies the legacy id into ID when ID is empty and clears it.
func (i *Ident) ResolveID() {
	if i.ID == "" {
		i.ID = i.LegacyID
	}
	i.LegacyID = ""
}

type identifiable interface {
	ResolveID()
}

// ResolveAll folds legacy ids for every element of items in place.
func ResolveAll[T any, PT interface {
	*T
	identifiable
}](items []T) []T {
	for i := range items {
		PT(&items[i]).ResolveID()
	}
	return items
}
