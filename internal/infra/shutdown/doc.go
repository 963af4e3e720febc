// Package shutdown runs cleanup hooks when the process is asked to stop.
//
// A Handler waits for SIGINT or SIGTERM (or a cancelled context), then
// runs the registered hooks in reverse order under a timeout. The watch
// command uses it to stop the configuration watcher, the metrics server
// and the log sink.
package shutdown
