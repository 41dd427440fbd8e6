//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris

package exec

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}
