// Package tasks holds the UI-agnostic session logic that sits between the paste store and
// the presentation layers (CLI, TUI, HTTP).
//
// # Views
//
//  1. [Editor] : create or update a paste
//     - Holds transient Title/Content input and an optional Target identifier
//     - [Editor.Edit] pre-fills the inputs from the store
//     - [Editor.Save] creates when Target is empty, otherwise updates; input state is
//     cleared afterwards regardless of outcome
//
//  2. [Listing] : browse, search and act on pastes
//     - [Listing.SetQuery] drives a case-insensitive title filter
//     - [Listing.Delete] is the only store mutation a listing performs
//     - [Listing.CopyContent] and [Listing.Share] write to the clipboard in the background
//     and report a single [Notification]
//
// # Bulk Operations
//
// [BulkExport] writes each paste to its own file using a bounded worker pool and records a
// manifest. [Import] restores parsed pastes into the store, skipping identifiers that
// already exist.
//
// # Progress Reporting
//
// Long-running operations use non-blocking channels for progress updates.
// The [ProgressUpdate] struct contains phase, step counters and a message; updates use
// select with default so a slow reader never stalls the operation.
package tasks
