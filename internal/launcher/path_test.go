package launcher

import (
	"reflect"
	"testing"
)

func TestNewSearchPath(t *testing.T) {
	tests := []struct {
		value string
		want  SearchPath
	}{
		{"", nil},
		{"/bin", SearchPath{"/bin"}},
		{"/usr/local/bin:/usr/bin:/bin", SearchPath{"/usr/local/bin", "/usr/bin", "/bin"}},
		{"/bin::/usr/bin", SearchPath{"/bin", ".", "/usr/bin"}},
		{":/bin", SearchPath{".", "/bin"}},
	}
	for _, tt := range tests {
		if got := NewSearchPath(tt.value); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("NewSearchPath(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestCandidates(t *testing.T) {
	p := NewSearchPath("/usr/bin:/bin/:.")
	tests := []struct {
		name string
		want []string
	}{
		{"ls", []string{"/usr/bin/ls", "/bin/ls", "./ls"}},
		{"./myspin", []string{"./myspin"}},
		{"/bin/echo", []string{"/bin/echo"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := p.Candidates(tt.name); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Candidates(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCandidatesEmptyPath(t *testing.T) {
	var p SearchPath
	if got := p.Candidates("ls"); len(got) != 0 {
		t.Fatalf("expected no candidates without a search path, got %q", got)
	}
	if got := p.Candidates("/bin/ls"); !reflect.DeepEqual(got, []string{"/bin/ls"}) {
		t.Fatalf("expected literal path, got %q", got)
	}
}
