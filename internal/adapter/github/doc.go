// Package github adapts the GitHub REST API to the pipeline's platform
// ports: pull request metadata, the changed-files listing, file content at
// a ref, and the two write-backs (description update, comment creation).
//
// The adapter keeps the domain layer platform-agnostic; swapping in GitLab
// or Bitbucket means another implementation of the same ports.
package github
