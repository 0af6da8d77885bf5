// reporter.go - adapts xdiff.Reporter onto opencoff/go-logger
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	logger "github.com/opencoff/go-logger"
)

// The three custom verdict levels from spec 6, positioned below and
// around go-logger's standard LOG_WARNING anchor. Nothing in this
// package logs at them: the show/hide decision per -v count is made by
// cliReporter below rather than by go-logger's own level filter, and
// it logs differences at Warning, sames at Notice and indeterminates
// at Info.
const (
	LOG_DIFFERENCES    = logger.LOG_WARNING
	LOG_SAMES          = logger.LOG_WARNING - 1
	LOG_INDETERMINATES = logger.LOG_WARNING - 2
)

// cliReporter implements xdiff.Reporter for the command-line front
// end: verbose 1 shows differences, 2 adds sames, 3 adds
// indeterminates, 4+ additionally logs at debug level.
type cliReporter struct {
	log     logger.Logger
	verbose int
}

func newReporter(log logger.Logger, verbose int) *cliReporter {
	return &cliReporter{log: log, verbose: verbose}
}

func (r *cliReporter) Same(name string) {
	if r.verbose >= 2 {
		r.log.Notice("same: %s", name)
	}
}

func (r *cliReporter) Different(name, reason string) {
	if r.verbose >= 1 {
		r.log.Warning("different: %s (%s)", name, reason)
	}
}

func (r *cliReporter) Indeterminate(name string) {
	if r.verbose >= 3 {
		r.log.Info("indeterminate: %s", name)
	}
}

func (r *cliReporter) Diff(name, unified string) {
	if r.verbose >= 1 {
		r.log.Warning("%s:\n%s", name, unified)
	}
	if r.verbose >= 4 {
		r.log.Debug("raw diff for %s:\n%s", name, unified)
	}
}
