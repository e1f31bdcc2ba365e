// Package log provides the logging abstraction used by curlite components.
//
// Components depend on the Logger interface. The zerolog adapter writes a
// human-readable console stream to stderr and, optionally, JSON lines to a
// size-rotated log file:
//
//	logger, closer, err := log.New(log.Options{Level: "debug", File: "/tmp/curlite.log"})
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
// Tests use the no-op logger:
//
//	logger := log.NewNoopLogger()
package log
