// Package models defines the paste entity and the persistence port used by the store.
//
//   - [Paste] : the fixed-shape record (id, title, content, creation time)
//   - [Repository] : durable storage for pastes, implemented by the repositories package
//
// A Paste is a plain value. The store hands out copies so callers never alias its collection.
package models
