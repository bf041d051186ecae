// Package services implements the driving port interfaces.
// Services contain the application logic and orchestrate
// calls to driven ports (adapters) and the succession engine.
//
// Services are pure Go with no CGO.
package services
