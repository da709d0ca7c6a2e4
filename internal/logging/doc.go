// Package logging builds the zerolog loggers used across scrollkit.
//
// A logger is configured once per CLI invocation from Config (level, format and
// output target), stored in the command context, and retrieved with FromContext.
// Each package derives a component logger so log lines can be filtered by origin.
// The interactive demo always logs to a file because the terminal is busy drawing.
package logging
