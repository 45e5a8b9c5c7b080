// Package fs abstracts the file operations behind the local blob store so
// tests can inject failures.
//
//   - [LocalFS] is the production implementation (fs.Default).
//   - [FaultyFS] fails opens, writes, syncs or renames of files whose name
//     contains a registered pattern, e.g. to stop a multi-partition write
//     half way through.
//
// The interfaces take no context.Context: local file operations are not
// interruptible at the syscall level.
package fs
