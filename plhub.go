// Package plhub holds shared metadata for the PohLang development hub.
package plhub

// Version is the current PLHub release.
const Version = "0.6.0"
