// Package commit provides the commit record model and a conventional-commit
// message parser.
//
// The parser is driven entirely by ParserOptions: the header layout, merge and
// revert detection, note keywords and reference actions are all data, so a
// changelog preset can describe its commit convention without code.
package commit
