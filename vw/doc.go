// Package vw drives an external online learner through its stdin/stdout
// line protocol.
//
// Architecture:
//   - channel.go: Channel abstraction over a bidirectional line pipe, with
//     deadline-bounded reads
//   - process.go: subprocess lifecycle, spawning the learner from a command
//     line and exposing its stdio as a Channel
//   - session.go: synchronous request/response exchanges with echo-aware
//     framing, example encoding, and response decoding
//
// The wire subpackage holds the pure example-line codec; this package owns
// everything that touches the running process. One Session owns one Channel
// exclusively and serializes exchanges: the protocol is strictly
// one-in-one-out.
package vw
