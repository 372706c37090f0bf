// Package preset provides the emoji conventional-commit changelog preset.
//
// A preset is the pair of options a changelog generator needs:
//   - ParserOpts: how commit headers, reverts and breaking-change notes look
//   - WriterOpts: how parsed commits are transformed, grouped, sorted and
//     which handlebars templates render them
//
// The four template fragments (template.hbs, header.hbs, commit.hbs,
// footer.hbs) are embedded at build time and can be replaced by a directory
// on disk. They are read concurrently and the Config is only returned once
// all of them loaded.
package preset
