// Package artifact loads the pre-trained model, the fitted feature scaler and
// the column metadata that together define the prediction pipeline.
//
// # Layout
//
// Artifacts live in one directory (default "artifacts"):
//
//	housing_price_model.json   {"kind":"linear","coef":[...],"intercept":x}
//	scaler.json                {"kind":"standard","feature_names_in":[...],"mean":[...],"scale":[...]}
//	columns.json               ["area","bedrooms",...]
//	categorical_columns.json   ["mainroad",...]
//
// The model and scaler documents carry the fitted estimator attributes
// (coef_, intercept_, mean_, scale_, min_, feature_names_in_) and are
// validated against embedded JSON Schemas before decoding. Column lists may
// also be YAML (.yaml, .yml).
//
// # Loading
//
//	store, err := artifact.Load(artifact.DefaultPaths("/srv/artifacts"))
//	if err != nil {
//	    // ARTIFACT_MISSING or ARTIFACT_LOAD_FAILURE
//	}
//
// Load checks that every file exists before decoding any of them, then
// cross-checks the artifacts: categorical columns must be a subset of the
// feature schema and the model width must equal the scaler's feature count.
//
// A Store is immutable and safe for concurrent use. There is no reload;
// restart the process to pick up new artifacts.
package artifact
