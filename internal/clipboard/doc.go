// Package clipboard writes text to the user's clipboard through an ordered chain of
// mechanisms.
//
// The primary mechanism is the system clipboard (pbcopy, xclip/xsel, or the Windows API,
// via atotto/clipboard). When that is unavailable, e.g. over SSH or inside a container,
// the legacy mechanism writes an OSC 52 escape sequence to the controlling terminal,
// which most modern terminal emulators forward to the local clipboard.
//
// Writes are fire-and-forget from the caller's perspective: [CopyAsync] runs the chain on
// a goroutine and reports exactly once on a buffered channel.
package clipboard
