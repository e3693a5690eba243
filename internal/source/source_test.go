package source

import "testing"

func TestFileSet_PositionLineColumn(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("fn a() {}\nfn b() {}\n"))

	tests := []struct {
		name       string
		offset     uint32
		wantLine   uint32
		wantColumn uint32
	}{
		{"first line start", 0, 1, 1},
		{"first line mid", 3, 1, 4},
		{"second line start", 10, 2, 1},
		{"second line mid", 13, 2, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := fs.Position(id, tc.offset, 1)
			if pos.Line != tc.wantLine || pos.Column != tc.wantColumn {
				t.Fatalf("Position(%d) = %d:%d, want %d:%d", tc.offset, pos.Line, pos.Column, tc.wantLine, tc.wantColumn)
			}
		})
	}
}

func TestFile_Line(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("let x = 1;\nlet y = 2;\n"))
	f := fs.Get(id)
	if got := f.Line(1); got != "let x = 1;" {
		t.Fatalf("Line(1) = %q", got)
	}
	if got := f.Line(2); got != "let y = 2;" {
		t.Fatalf("Line(2) = %q", got)
	}
	if got := f.Line(3); got != "" {
		t.Fatalf("Line(3) = %q, want empty", got)
	}
}

func TestPosition_Cover(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("abcdefgh"))
	a := fs.Position(id, 2, 2) // "cd"
	b := fs.Position(id, 5, 1) // "f"
	cov := a.Cover(b)
	if cov.Offset != 2 || cov.Length != 4 {
		t.Fatalf("Cover = {Offset:%d Length:%d}, want {2 4}", cov.Offset, cov.Length)
	}
}

func TestFileSet_ByPath(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("alpha.cov", []byte("fn main() {}"))
	got, ok := fs.ByPath("alpha.cov")
	if !ok || got != id {
		t.Fatalf("ByPath = %v, %v, want %v, true", got, ok, id)
	}
	if _, ok := fs.ByPath("missing.cov"); ok {
		t.Fatalf("ByPath(missing) = true, want false")
	}
}
