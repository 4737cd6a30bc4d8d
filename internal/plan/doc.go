// Package plan folds the flat token stream into an ordered list of validated
// jobs.
//
// The fold is a single left-to-right pass driven by an explicit option state
// machine. Directory directives (source-dir, output-dir, name-prefix) scope
// to the next job to be opened and are carried forward as last-known values,
// so a job that omits a directive inherits it from the nearest preceding
// declaration. Sources are validated when a job opens (readable, non-empty,
// supported by the external encoder); output names are allocated when a job
// is finalized, which is also when image requests become concrete.
//
// Every failure short of an internal invariant violation is recorded and
// skipped: an invalid timestamp drops one value, a rejected source drops one
// job, an exhausted naming space drops one allocation. The build always runs
// the token stream to completion.
package plan
