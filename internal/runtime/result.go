package runtime

// ExitAbnormal is the exit code reported when the runtime never produced
// one: the binary was missing, the process could not be spawned, or the
// child was killed (timeout included).
const ExitAbnormal = -1

// Result holds the normalized outcome of one runtime invocation.
// It is constructed once per call and never mutated afterwards.
type Result struct {
	Success  bool   `json:"success"`   // true iff the child exited 0
	Stdout   string `json:"stdout"`    // captured stdout, trailing whitespace trimmed
	Stderr   string `json:"stderr"`    // captured stderr, trailing whitespace trimmed
	ExitCode int    `json:"exit_code"` // ExitAbnormal if the child never exited on its own
}
