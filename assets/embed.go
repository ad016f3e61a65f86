package assets

import _ "embed"

// ResultsImage is the decorative picture attached to the welcome message and
// the test results. Delivery falls back to plain text when the upload fails.
//
//go:embed results.png
var ResultsImage []byte
