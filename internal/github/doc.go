// Package github parses GitHub source URLs and reads repository data
// through the REST API.
//
// [ParseSourceURL] turns the URL forms users paste (bare repo, tree/branch,
// tree/branch/path, pull request) into a [SourceRef] without touching the
// network. [Client] covers the three read endpoints the fetch pipeline
// needs: recursive branch trees, base64 file contents, and pull-request
// metadata.
//
// Calls work unauthenticated; a GITHUB_TOKEN is attached when present so
// private repositories resolve too. Missing branches and pull requests
// surface as typed errors so the CLI can report them distinctly from
// generic API failures.
package github
