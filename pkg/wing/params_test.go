package wing

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("Default() should validate, got: %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DesignParameters)
		field  string
	}{
		{"zero span", func(p *DesignParameters) { p.Span = 0 }, "span"},
		{"negative root chord", func(p *DesignParameters) { p.RootChord = -1 }, "rootChord"},
		{"zero tip chord", func(p *DesignParameters) { p.TipChord = 0 }, "tipChord"},
		{"vertical sweep", func(p *DesignParameters) { p.Sweep = 90 }, "sweep"},
		{"vertical dihedral", func(p *DesignParameters) { p.Dihedral = -95 }, "dihedral"},
		{"thickness at chord", func(p *DesignParameters) { p.RootThickness = 1 }, "rootThickness"},
		{"negative tip thickness", func(p *DesignParameters) { p.TipThickness = -0.1 }, "tipThickness"},
		{"excessive camber", func(p *DesignParameters) { p.RootCamber = 0.5 }, "rootCamber"},
		{"negative tip camber", func(p *DesignParameters) { p.TipCamber = -0.01 }, "tipCamber"},
		{"camber location at edge", func(p *DesignParameters) { p.MaxCamberLoc = 0 }, "maxCamberLoc"},
		{"single rib station", func(p *DesignParameters) { p.NumRibs = 1 }, "nribs"},
		{"negative spar count", func(p *DesignParameters) { p.NumSpars = -1 }, "nspars"},
		{"spar weights off", func(p *DesignParameters) { p.SparDist = Distribution{A1: 0.5, A2: 0.5, A3: 0.5} }, "sparDist"},
		{"rib weights off", func(p *DesignParameters) { p.RibDist = Distribution{} }, "ribDist"},
		{"negative web", func(p *DesignParameters) { p.WebThickness = -0.1 }, "webThickness"},
		{"negative shell", func(p *DesignParameters) { p.ShellThickness = -1 }, "shellThickness"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !IsInvalidParameter(err) {
				t.Errorf("error %v should be an InvalidParameterError", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should name field %s", err, tt.field)
			}
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	p := Default()
	p.Span = -1
	p.NumSpars = -2

	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "span") || !strings.Contains(msg, "nspars") {
		t.Errorf("joined error %q should report both violations", msg)
	}
}

func TestSparlessWingValidates(t *testing.T) {
	p := Default()
	p.NumSpars = 0
	if err := p.Validate(); err != nil {
		t.Errorf("a wing without spar webs is a valid configuration: %v", err)
	}
}

func TestCamberlessProfileSkipsLocationCheck(t *testing.T) {
	p := Default()
	p.RootCamber = 0
	p.TipCamber = 0
	p.MaxCamberLoc = 0
	if err := p.Validate(); err != nil {
		t.Errorf("symmetric sections should not require a camber location: %v", err)
	}
}

func TestRibStations(t *testing.T) {
	p := Default() // span 10, three stations, linear
	wants := []float64{0, 2.5, 5}
	for i, want := range wants {
		if got := p.RibStation(i + 1); math.Abs(got-want) > 1e-12 {
			t.Errorf("RibStation(%d) = %g, want %g", i+1, got, want)
		}
	}
}

func TestSparChordwise(t *testing.T) {
	p := Default() // one spar, chords 2 and 1, no sweep
	xRoot, xTip := p.SparChordwise(1)
	if math.Abs(xRoot-1.0) > 1e-12 {
		t.Errorf("spar root position = %g, want 1.0", xRoot)
	}
	if math.Abs(xTip-0.5) > 1e-12 {
		t.Errorf("spar tip position = %g, want 0.5", xTip)
	}
}

func TestSparChordwiseCarriesSweepOffset(t *testing.T) {
	p := Default()
	p.Sweep = 45 // tan = 1, so the tip shifts by the half-span

	_, xTip := p.SparChordwise(1)
	want := 0.5 + p.HalfSpan()
	if math.Abs(xTip-want) > 1e-9 {
		t.Errorf("swept spar tip position = %g, want %g", xTip, want)
	}
}

func TestTipOffsets(t *testing.T) {
	p := Default()
	if p.TipOffsetX() != 0 || p.TipOffsetZ() != 0 {
		t.Error("unswept wing should have zero tip offsets")
	}

	p.Dihedral = 45
	if got := p.TipOffsetZ(); math.Abs(got-5) > 1e-9 {
		t.Errorf("dihedral tip offset = %g, want 5", got)
	}
}
