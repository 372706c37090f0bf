// Package changelog runs the end-to-end changelog pipeline: read history
// from a repository, parse and transform each commit with the preset,
// render a section and write it out.
//
// It also formats single parsed commits for terminal display.
package changelog
