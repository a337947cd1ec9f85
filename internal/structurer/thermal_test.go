package structurer

import (
	"testing"
)

const sampleThermal = `[Page 1]
Thermal Survey Report
Prepared for site visit

[Page 2]
Thermal Image: IR_0042.jpg
Hotspot: 41.3 °C
Coldspot: 24.1 °C
Emissivity: 0.95
Reflected Temp: 22.0 °C
Device: FLIR E8 Serial 63909123
Date: 17/03/24
2

[Page 3]
Max Temp: 38.6C
Min Temp: 21.9C
`

func TestStructureThermal_DropsPagesWithoutReadings(t *testing.T) {
	d := StructureThermal(sampleThermal)
	// The cover page yields no field and must be filtered out.
	if len(d.Readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(d.Readings))
	}
}

func TestStructureThermal_FullPage(t *testing.T) {
	d := StructureThermal(sampleThermal)
	if len(d.Readings) < 1 {
		t.Fatal("expected at least 1 reading")
	}
	r := d.Readings[0]

	checks := []struct {
		field string
		got   string
		want  string
	}{
		{"Hotspot", r.Hotspot, "41.3 °C"},
		{"Coldspot", r.Coldspot, "24.1 °C"},
		{"Emissivity", r.Emissivity, "0.95"},
		{"ImageFile", r.ImageFile, "IR_0042.jpg"},
		{"Device", r.Device, "FLIR E8"},
		{"Date", r.Date, "17/03/24"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}
	if r.ImageNumber != 2 {
		t.Errorf("ImageNumber = %d, want 2", r.ImageNumber)
	}
}

func TestStructureThermal_TemperatureCanonicalized(t *testing.T) {
	// "38.6C" without the degree symbol must still come out canonical.
	d := StructureThermal(sampleThermal)
	if len(d.Readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(d.Readings))
	}
	r := d.Readings[1]
	if r.Hotspot != "38.6 °C" {
		t.Errorf("Hotspot = %q, want %q", r.Hotspot, "38.6 °C")
	}
	if r.Coldspot != "21.9 °C" {
		t.Errorf("Coldspot = %q, want %q", r.Coldspot, "21.9 °C")
	}
}

func TestParseThermalPage_DateFormats(t *testing.T) {
	cases := []struct {
		page string
		want string
	}{
		{"Hotspot: 30.0 °C\nDate: 17/03/24", "17/03/24"},
		{"Hotspot: 30.0 °C\nDate: 17.03.2024", "17.03.2024"},
		{"Hotspot: 30.0 °C\nDate: 2024-03-17", "2024-03-17"},
	}
	for _, c := range cases {
		r := parseThermalPage(c.page)
		if r.Date != c.want {
			t.Errorf("page %q: Date = %q, want %q", c.page, r.Date, c.want)
		}
	}
}

func TestStructureThermal_NeverFails(t *testing.T) {
	for _, in := range []string{"", "no markers at all", "[Page 1]\nblank cover"} {
		d := StructureThermal(in)
		if len(d.Readings) != 0 {
			t.Errorf("input %q: expected 0 readings, got %d", in, len(d.Readings))
		}
	}
}
