package render

import (
	"bytes"
	"testing"

	"github.com/matzehuels/cdgpath/pkg/builder"
	"github.com/matzehuels/cdgpath/pkg/cdg"
)

func smallForest(t *testing.T) *cdg.Node {
	t.Helper()
	b, err := builder.Build([]builder.Record{
		{ID: 1, Expr: "x > 0"},
		{ID: 2, Parent: builder.Ref(1), Branch: builder.On(cdg.True)},
		{ID: 3, Parent: builder.Ref(1), Branch: builder.On(cdg.True)},
		{ID: 4, Parent: builder.Ref(3), Branch: builder.On(cdg.True), Covered: true},
		{ID: 5, Parent: builder.Ref(1), Branch: builder.On(cdg.False)},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return cdg.UpdateCDG(b.Root())
}

func TestWriteOutline(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutline(&buf, smallForest(t)); err != nil {
		t.Fatalf("WriteOutline() error = %v", err)
	}

	want := "1 [1 T] x > 0\n" +
		"  T 2 .\n" +
		"  T 3 [0 T]\n" +
		"    T 4 x\n" +
		"  F 5 .\n"
	if buf.String() != want {
		t.Errorf("WriteOutline() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteOutlineEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutline(&buf, nil); err != nil {
		t.Fatalf("WriteOutline(nil) error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("WriteOutline(nil) wrote %q", buf.String())
	}
}

func TestWritePathOutline(t *testing.T) {
	root := cdg.NewNode(1, 0, cdg.True, "x > 0", nil, nil, nil, nil)
	root.AddTrue(cdg.NewNode(2, 1, cdg.True, "", nil, nil, nil, nil))
	root.AddFalse(cdg.NewNode(3, 1, cdg.True, "", nil, nil, nil, nil))
	cdg.UpdateCDG(root)

	var buf bytes.Buffer
	if err := WritePathOutline(&buf, cdg.TopPaths(root, 5)); err != nil {
		t.Fatalf("WritePathOutline() error = %v", err)
	}

	want := "#1\n  1 -> true  (x > 0)\n#2\n  1 -> false  (x > 0)\n"
	if buf.String() != want {
		t.Errorf("WritePathOutline() = %q, want %q", buf.String(), want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"DOT", FormatDOT, false},
		{" text ", FormatText, false},
		{"png", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFormatExt(t *testing.T) {
	if got := FormatSVG.Ext(); got != ".svg" {
		t.Errorf("FormatSVG.Ext() = %q", got)
	}
	if got := FormatText.Ext(); got != ".txt" {
		t.Errorf("FormatText.Ext() = %q", got)
	}
}
