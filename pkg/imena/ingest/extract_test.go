package ingest

import (
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

const tomitaDoc = `<?xml version='1.0' encoding='utf-8'?>
<fdo_objects>
<document url="" di="5" bi="-1" date="2019-01-01">
<facts>
<Person FactID="0" LeadID="0" FieldsInfo="" sn="3" fw="4"><Name val="ИВАН ПЕТРОВ"/></Person>
<Person FactID="1" LeadID="1" FieldsInfo="" sn="9" fw="9"><Name val="МОСКВА"/></Person>
</facts>
</document>
</fdo_objects>`

func assertStrings(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %q, want %q", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %q, want %q", label, i, got[i], want[i])
		}
	}
}

func TestExtractCandidatesTomitaOutput(t *testing.T) {
	got, err := ExtractCandidates(strings.NewReader(tomitaDoc))
	if err != nil {
		t.Fatalf("ExtractCandidates: %v", err)
	}
	assertStrings(t, "candidates", got, []string{"Иван Петров", "Москва"})
}

func TestExtractCandidatesMalformed(t *testing.T) {
	doc := `<doc><Name val="ИВАН ПЕТРОВ"></Name></span><p><NAME VAL="лев ландау"><Name other="x"></Doc>`

	got, err := ExtractCandidates(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Malformed markup should not fail: %v", err)
	}
	assertStrings(t, "candidates", got, []string{"Иван Петров", "Лев Ландау"})
}

func TestExtractCandidatesEmpty(t *testing.T) {
	for _, doc := range []string{"", "<fdo_objects></fdo_objects>", "not markup at all"} {
		got, err := ExtractCandidates(strings.NewReader(doc))
		if err != nil {
			t.Errorf("ExtractCandidates(%q): %v", doc, err)
		}
		if len(got) != 0 {
			t.Errorf("ExtractCandidates(%q) = %q, want none", doc, got)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestExtractCandidatesUnreadable(t *testing.T) {
	_, err := ExtractCandidates(failingReader{})
	if !errors.Is(err, internalerr.ErrParse) {
		t.Errorf("unreadable input: got %v, want ErrParse", err)
	}
}

func TestDecodeTaggerOutputWindows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String(`<Name val="ЛЕВ ЛАНДАУ"/>`)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	r, err := DecodeTaggerOutput("windows-1251", []byte(encoded))
	if err != nil {
		t.Fatalf("DecodeTaggerOutput: %v", err)
	}
	got, err := ExtractCandidates(r)
	if err != nil {
		t.Fatalf("ExtractCandidates: %v", err)
	}
	assertStrings(t, "candidates", got, []string{"Лев Ландау"})
}

func TestDecodeTaggerOutputDefaultUTF8(t *testing.T) {
	r, err := DecodeTaggerOutput("", []byte(tomitaDoc))
	if err != nil {
		t.Fatalf("DecodeTaggerOutput: %v", err)
	}
	got, err := ExtractCandidates(r)
	if err != nil {
		t.Fatalf("ExtractCandidates: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("candidates = %q, want 2", got)
	}
}

func TestDecodeTaggerOutputUnknownCharset(t *testing.T) {
	_, err := DecodeTaggerOutput("no-such-charset", []byte("x"))
	if !errors.Is(err, internalerr.ErrParse) {
		t.Errorf("unknown charset: got %v, want ErrParse", err)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ИВАН ПЕТРОВ", "Иван Петров"},
		{"лев ландау", "Лев Ландау"},
		{"ёлкин", "Ёлкин"},
		{"ИВАН-ПЕТРОВ", "Иван-Петров"},
		{"Д'АРТАНЬЯН", "Д'Артаньян"},
		{"О’КОННОР", "О’Коннор"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
