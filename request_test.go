package convert

import "testing"

func TestInputFileBaseName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"report.docx", "report"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{"trailing.", "trailing"},
		{"My Photo.PNG", "My Photo"},
	}
	for _, tt := range tests {
		if got := (InputFile{Name: tt.name}).BaseName(); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInputFileExt(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"report.docx", "docx"},
		{"My Photo.PNG", "png"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		if got := (InputFile{Name: tt.name}).Ext(); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	r := &ConversionRequest{SourceFormat: " PNG ", TargetFormat: "Pdf"}
	r.Normalize()
	if r.SourceFormat != "png" || r.TargetFormat != "pdf" {
		t.Errorf("formats = %q, %q", r.SourceFormat, r.TargetFormat)
	}
	if r.PDFMode != PDFModeMerge {
		t.Errorf("PDFMode = %q, want merge", r.PDFMode)
	}

	r = &ConversionRequest{PDFMode: PDFModeSeparate}
	r.Normalize()
	if r.PDFMode != PDFModeSeparate {
		t.Error("Normalize overwrote an explicit PDF mode")
	}
}

func TestOutcomeIsArchive(t *testing.T) {
	one := &Outcome{Artifacts: []Artifact{{Name: "a"}}}
	if one.IsArchive() {
		t.Error("single artifact should not archive")
	}
	forced := &Outcome{Artifacts: []Artifact{{Name: "a"}}, Archived: true}
	if !forced.IsArchive() {
		t.Error("Archived flag ignored")
	}
	many := &Outcome{Artifacts: []Artifact{{Name: "a"}, {Name: "b"}}}
	if !many.IsArchive() {
		t.Error("multiple artifacts should archive")
	}
}
