// Package connectors holds clients for remote document sources.
// Each connector implements driven.RemoteSource for one publisher
// (see rfceditor for the RFC Editor).
package connectors
