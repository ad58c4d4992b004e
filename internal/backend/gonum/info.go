package gonum

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Info reports the CPU features gonum's assembly kernels can take
// advantage of on this host.
type Info struct {
	Name string   `json:"name"`
	Arch string   `json:"arch"`
	SIMD []string `json:"simd"`
}

func detectInfo() Info {
	info := Info{
		Name: Name,
		Arch: runtime.GOARCH,
		SIMD: []string{},
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			has  bool
		}{
			{"sse2", cpu.X86.HasSSE2},
			{"sse4.1", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		} {
			if f.has {
				info.SIMD = append(info.SIMD, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			info.SIMD = append(info.SIMD, "asimd")
		}
		if cpu.ARM64.HasSVE {
			info.SIMD = append(info.SIMD, "sve")
		}
	}
	return info
}
