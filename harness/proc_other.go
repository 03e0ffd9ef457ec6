//go:build !unix

package harness

import "os/exec"

func killGroupOnCancel(_ *exec.Cmd) {}
