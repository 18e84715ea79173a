// Package predictor turns raw housing feature vectors into price estimates.
//
// A Service wraps a loaded artifact.Store and runs each vector through the
// same steps used at training time:
//
//  1. shape check against the feature schema
//  2. one-hot encoding of categorical columns (Encode)
//  3. reindexing onto the scaler's fitted feature order (Align)
//  4. scaling
//  5. model inference
//
// Failures carry a structured error code: NOT_READY when no artifacts are
// loaded, SHAPE_MISMATCH for a wrong-length vector and ENCODING_FAILURE for
// anything that goes wrong in steps 2 to 5.
//
// Categorical values that were never seen in training have no encoded
// feature. With UnseenCategoryIgnore (the default) they contribute all-zero
// indicators and are logged and counted; UnseenCategoryReject turns them into
// an ENCODING_FAILURE.
//
// Usage:
//
//	store, err := artifact.Load(artifact.DefaultPaths("artifacts"))
//	if err != nil {
//	    return err
//	}
//	svc := predictor.New(store, predictor.WithCacheSize(4096))
//	price, err := svc.EstimatePrice(ctx, []any{7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"})
//
// The HTTP handlers in this package expose the service as
//
//	GET  /                     plain text welcome message
//	POST /get_predicted_price  {"input": [...]} -> {"estimated_price": 1234.5}
package predictor
