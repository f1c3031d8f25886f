// Package regression provides line fitting and goodness-of-fit statistics for
// piecewise-linear segmentations.
//
// The segment package finds where to cut a point sequence; this package
// answers how well the resulting lines describe the data.
//
// # Key Features
//
//   - **Line fitting**: FitLine computes an ordinary least-squares line
//   - **Piecewise evaluation**: Piecewise evaluates a segmentation at any x
//   - **Fit statistics**: Summarize reports R² and RMSE per segment, for the
//     whole segmentation and for a single-line baseline
//
// # Usage
//
//	result, err := segment.SolveFloat64(points, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := regression.Summarize(points, result)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary)
//
// # Metrics
//
//   - R²: coefficient of determination, 1 - SSres/SStot. A perfectly flat
//     range that is fitted exactly reports 1.
//   - RMSE: root mean square error of the residuals.
//
// Comparing Overall with Baseline shows how much the segmentation gains over
// a single line through all points.
package regression
