// Package viz renders solver output for the terminal.
//
// The package wraps asciigraph charts and lipgloss styles behind helpers
// shared by the CLI and the live view:
//
//   - [SolutionChart]: one chart per state column of a trajectory
//   - [ConvergenceChart]: update-norm history on a log scale
//   - [Spinner]: animation frame for in-progress solves
//
// Charts degrade to a short placeholder line when a series is empty or
// entirely non-finite rather than erroring, so callers can print whatever
// a run produced.
package viz
