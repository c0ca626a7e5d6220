// Package giterror classifies failures returned by the GitHub REST API so
// callers can map them onto the application's sentinel errors. Classification
// prefers the typed errors surfaced by the go-github client and falls back to
// message inspection for transport-level failures.
package giterror
