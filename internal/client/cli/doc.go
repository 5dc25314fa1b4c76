// Package cli provides the interactive EduPilot command-line client.
//
// It wires configuration, the persisted session, the REST services and an
// interactive REPL. Typical flow: restore the previous session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, with the session kept across restarts
//   - Courses and concepts with progress tracking and project tasks
//   - Practice projects, skills and roadmaps, CV generation
//   - Job search and spreadsheet export
//   - The EduBot chat assistant
//
// A failed command prints one line and leaves it as a notice in the prompt
// until it expires. When the server rejects the session token the user is
// logged out and asked to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
