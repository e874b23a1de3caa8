package platform

import (
	"fmt"
	"os"

	ps "github.com/mitchellh/go-ps"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// Function substitutions for unit tests
var (
	hostInfoF    = host.Info
	cpuInfoF     = cpu.Info
	findProcessF = ps.FindProcess
)

// Best effort description of the OS, the core and the process.
// Sources that fail are skipped.
func describe(core int) []string {
	lines := make([]string, 0, 8)

	if hi, err := hostInfoF(); err == nil && hi != nil {
		lines = append(lines,
			fmt.Sprintf("%s %s %s", hi.OS, hi.Platform, hi.PlatformVersion),
			fmt.Sprintf("kernel %s %s", hi.KernelVersion, hi.KernelArch),
			fmt.Sprintf("host %s", hi.Hostname))
		if hi.VirtualizationSystem != "" {
			lines = append(lines, fmt.Sprintf("virtualization %s %s", hi.VirtualizationSystem, hi.VirtualizationRole))
		}
	}

	if infos, err := cpuInfoF(); err == nil && len(infos) > 0 {
		ci := infos[0]
		for _, inf := range infos {
			if int(inf.CPU) == core {
				ci = inf
				break
			}
		}
		lines = append(lines,
			fmt.Sprintf("processor %d", core),
			fmt.Sprintf("model name %s", ci.ModelName),
			fmt.Sprintf("vendor %s family %s model %s stepping %d", ci.VendorID, ci.Family, ci.Model, ci.Stepping),
			fmt.Sprintf("cpu MHz %.3f", ci.Mhz))
	}

	if proc, err := findProcessF(os.Getpid()); err == nil && proc != nil {
		lines = append(lines, fmt.Sprintf("process %s pid %d", proc.Executable(), proc.Pid()))
	}

	return lines
}
