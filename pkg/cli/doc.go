// Package cli implements the hpp command-line interface.
//
// # Commands
//
// serve - Run the prediction API server:
//
//	hpp serve --artifacts ./artifacts --port 8080 --unseen-category ignore
//
// Loads the artifacts and serves GET / and POST /get_predicted_price until
// interrupted. Startup fails when an artifact is missing or invalid.
//
// predict - Estimate prices from the command line:
//
//	hpp predict --input '[7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]'
//	hpp predict --rows rows.yaml --format table
//
// Rows that do not match the feature schema are reported and skipped. The
// table format prints prices with thousands separators.
//
// inspect - Summarize the loaded artifacts:
//
//	hpp inspect --artifacts ./artifacts --format json
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Command Flags
//
//	--artifacts, -a      Artifact directory (env: ARTIFACTS_DIR)
//	--unseen-category    ignore or reject (env: UNSEEN_CATEGORY_POLICY)
//	--output, -o         Output file path (default: stdout)
//	--format, -t         Output format: yaml, json, table (default: yaml)
package cli
