// Package diff interprets unified diff patches supplied by the hosting
// platform and maps added lines back into the full post-change file text.
//
// The primary use case is assembling a surrounding-code excerpt for each
// added line so a reviewer (human or model) can judge a change without
// reading the whole file.
package diff
