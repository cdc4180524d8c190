package device

import "testing"

func TestSelect_priorityOrder(t *testing.T) {
	probes := []Probe{
		{Kind: KindCUDA, Check: func() bool { return true }, Name: func() string { return "NVIDIA RTX 4090" }},
		{Kind: KindCoreML, Check: func() bool { return true }},
	}
	d := Select(probes)
	if d.Kind != KindCUDA {
		t.Errorf("kind: got %q, want cuda", d.Kind)
	}
	if d.Name != "NVIDIA RTX 4090" {
		t.Errorf("name: got %q", d.Name)
	}
	if !d.GPU() {
		t.Error("cuda descriptor should report GPU")
	}
}

func TestSelect_skipsUnavailable(t *testing.T) {
	probes := []Probe{
		{Kind: KindCUDA, Check: func() bool { return false }},
		{Kind: KindCoreML, Check: func() bool { return true }},
	}
	d := Select(probes)
	if d.Kind != KindCoreML {
		t.Errorf("kind: got %q, want coreml", d.Kind)
	}
	if d.Name != "coreml" {
		t.Errorf("name should fall back to kind, got %q", d.Name)
	}
	if d.GPU() {
		t.Error("coreml descriptor should not report GPU")
	}
}

func TestSelect_fallsBackToCPU(t *testing.T) {
	d := Select([]Probe{
		{Kind: KindCUDA, Check: func() bool { return false }},
		{Kind: KindCoreML, Check: func() bool { return false }},
	})
	if d.Kind != KindCPU {
		t.Errorf("kind: got %q, want cpu", d.Kind)
	}
}

func TestSelect_emptyTable(t *testing.T) {
	d := Select(nil)
	if d.Kind != KindCPU {
		t.Errorf("kind: got %q, want cpu", d.Kind)
	}
}

func TestSelect_nilCheckSkipped(t *testing.T) {
	d := Select([]Probe{{Kind: KindCUDA}})
	if d.Kind != KindCPU {
		t.Errorf("probe without Check should be skipped, got %q", d.Kind)
	}
}

func TestSelect_emptyNameFallsBackToKind(t *testing.T) {
	d := Select([]Probe{
		{Kind: KindCUDA, Check: func() bool { return true }, Name: func() string { return "" }},
	})
	if d.Name != "cuda" {
		t.Errorf("name: got %q, want cuda", d.Name)
	}
}
