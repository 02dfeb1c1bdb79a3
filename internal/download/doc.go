// Package download implements the download orchestrator: it validates a
// request, checks for the converter, resolves metadata, drives the extractor
// and post-processes the result with the converter. One request runs at a
// time; progress and stage changes are reported through an Observer.
package download
