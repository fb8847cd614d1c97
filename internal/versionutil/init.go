package versionutil

import "github.com/taufold/zkvm/cli/app"

// TestVersion is the version string tests pin the CLI to, so that
// `--version` output stays fixed regardless of build flags.
const TestVersion = "0.0.0-test"

// init sets app.Version to a dummy TestVersion value for packages that
// import this one. For test usage only!
func init() {
	app.Version = TestVersion
}
