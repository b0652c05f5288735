// Package models defines the core domain models for the pantry inventory core.
//
// # Storage hierarchy
//
// A user selects a House in the app. Inventory never lives on the House
// directly; it lives in a Kitchen (the backing container) owned by a
// Household:
//
//	House --(name match)--> Household --owns--> Kitchen --holds--> InventoryItem --aggregates--> InventoryBatch
//
// The House to Household link is a plain string match on the name. There is
// no foreign key on the remote side, so renaming either one breaks the link.
//
// # Derived fields
//
// InventoryItem.TotalQuantity, Status and NextExpiry are projections computed
// by the remote store from the item's batches. The client reads them and never
// writes them.
//
// # Ephemeral values
//
// ClassificationResult and Intent are never persisted. They live only until
// the caller has shown them to the user.
package models
