// Package store implements the paste record store, the single source of truth for all pastes.
//
// A [Store] owns an ordered collection of [models.Paste] values. New pastes are appended and
// never re-sorted; [Store.FilterByTitle] narrows the listing at read time without touching that
// order. Every exported operation is atomic: callers never observe a partially applied create,
// update or remove.
//
// # Persistence
//
// A Store built with [Open] loads its collection from a [models.Repository] and writes every
// mutation through that repository before applying it in memory. A failed write leaves the
// in-memory collection unchanged.
//
// # Update policy
//
// [Store.Update] is strict: updating an identifier that is not in the collection returns
// [ErrNotFound] and creates nothing. Callers that want to choose their own key use
// [Store.CreateWithID].
//
// # Change notifications
//
// [Store.Subscribe] delivers an [Event] for every successful mutation so views can re-render.
// Delivery never blocks a mutation; a subscriber that falls behind misses events.
package store
