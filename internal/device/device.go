// Package device selects the compute device for model inference using an
// ordered capability-probe chain.
package device

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Kind identifies a compute device class.
type Kind string

const (
	// KindCUDA is a dedicated NVIDIA GPU.
	KindCUDA Kind = "cuda"
	// KindCoreML is the Apple Silicon accelerator via CoreML.
	KindCoreML Kind = "coreml"
	// KindCPU is the general-purpose CPU fallback.
	KindCPU Kind = "cpu"
	// KindUnknown is reported before a device has been selected.
	KindUnknown Kind = "unknown"
)

// Descriptor describes the device the model is bound to.
type Descriptor struct {
	Kind Kind
	// Name is a human-readable device name (e.g. the GPU model), falling
	// back to the kind when no richer name is available.
	Name string
}

// GPU reports whether the descriptor is a dedicated GPU.
func (d Descriptor) GPU() bool {
	return d.Kind == KindCUDA
}

// Probe is one entry in the capability table. Check reports availability;
// Name, when set, supplies a richer device name.
type Probe struct {
	Kind  Kind
	Check func() bool
	Name  func() string
}

// Select returns the descriptor for the first available probe, in table
// order. When none is available it falls back to CPU, so Select always
// returns a usable descriptor.
func Select(probes []Probe) Descriptor {
	for _, p := range probes {
		if p.Check == nil || !p.Check() {
			continue
		}
		name := string(p.Kind)
		if p.Name != nil {
			if n := p.Name(); n != "" {
				name = n
			}
		}
		return Descriptor{Kind: p.Kind, Name: name}
	}
	return Descriptor{Kind: KindCPU, Name: string(KindCPU)}
}

// CUDADeviceName returns the name of the first NVIDIA GPU via nvidia-smi,
// or "" when the query fails. Best-effort, used for health reporting only.
func CUDADeviceName(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "nvidia-smi", "--query-gpu=name", "--format=csv,noheader").Output()
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[0])
}
