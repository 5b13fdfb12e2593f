// Package tools implements the permissioned tool sandbox the coder agents
// operate through.
//
// Every tool call passes three gates before touching the filesystem or a
// subprocess: ValidatePath rejects sensitive system locations outright,
// SessionPermissions checks the session's read/write/execute grants, and
// the tool's own typed argument decoding rejects malformed calls. Grants
// start empty (plus a small default command allowlist) and are widened only
// through the request_permission and init tools.
//
// The Registry holds the tool descriptors surfaced to the model and
// dispatches invocations by name; State bundles the shared permission
// record and shell executor that stateful tools close over.
package tools
