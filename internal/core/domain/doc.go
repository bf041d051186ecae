// Package domain defines the core business entities for Tarika.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A structured record extracted from one legal instrument
//   - HeirEntry: An heir listed in an inheritance disclosure
//   - HeirAuthorization: The derived authorization status of one heir
//   - AnalysisReport: The outcome of one recomputation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
