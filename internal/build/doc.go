// Package build runs manifests: ordered lists of document operations
// executed against shared files.
//
// A run loads the manifest once, resolves each step against a fixed
// Registry and invokes it. Every step yields exactly one outcome; an
// unknown tool, a returned error or a panic is recorded and the run moves
// on to the next step. There is no rollback. The report is a JSON array of
// {tool, result} entries in manifest order.
//
// All execution paths (MCP build_book, CLI build and watch mode) route
// through Orchestrator.
package build
