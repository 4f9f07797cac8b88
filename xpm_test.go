package toasters

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tiny is a 3x2 image with a transparent key, a two-character key width
// and a gray key type.
var tiny = []string{
	"3 2 3 2",
	".. c None",
	"rr c #FF0000",
	"gg g #808080",
	"..rrgg",
	"ggrr..",
}

func TestParseXPMHeader(t *testing.T) {
	tests := []struct {
		line    string
		want    XPMHeader
		wantErr bool
	}{
		{line: "64 64 5 1", want: XPMHeader{64, 64, 5, 1}},
		{line: "64 64 5 1 ", want: XPMHeader{64, 64, 5, 1}},
		{line: "8 4 2 2 0 0 XPMEXT", want: XPMHeader{8, 4, 2, 2}},
		{line: "8 4 64 4", want: XPMHeader{8, 4, 64, 4}},
		{line: "8 4 2", wantErr: true},
		{line: "8 x 2 1", wantErr: true},
		{line: "0 4 2 1", wantErr: true},
		{line: "8 -1 2 1", wantErr: true},
		{line: "8 4 0 1", wantErr: true},
		{line: "8 4 65 1", wantErr: true},
		{line: "8 4 2 0", wantErr: true},
		{line: "8 4 2 5", wantErr: true},
		{line: "4096 4096 1 1", want: XPMHeader{4096, 4096, 1, 1}},
		{line: "4097 1 1 1", wantErr: true},
		{line: "1 4097 1 1", wantErr: true},
		{line: "2305843009213693952 1 1 1", wantErr: true},
		{line: "99999999999999999999 1 1 1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseXPMHeader(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedImage) {
					t.Fatalf("err = %v, want ErrMalformedImage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseXPMColor(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		cpp     int
		key     string
		want    color.NRGBA
		wantErr bool
	}{
		{name: "none", line: "  c None", cpp: 1, key: " ", want: color.NRGBA{}},
		{name: "none lowercase", line: ". c none", cpp: 1, key: ".", want: color.NRGBA{}},
		{name: "hex", line: "# c #402010", cpp: 1, key: "#", want: color.NRGBA{0x40, 0x20, 0x10, 0xff}},
		{name: "hex lowercase", line: "ab c #a0b0c0", cpp: 2, key: "ab", want: color.NRGBA{0xa0, 0xb0, 0xc0, 0xff}},
		{name: "gray key", line: "g g #808080", cpp: 1, key: "g", want: color.NRGBA{0x80, 0x80, 0x80, 0xff}},
		{name: "space key wide", line: "   c None", cpp: 2, key: "  ", want: color.NRGBA{}},
		{name: "short line", line: "a", cpp: 2, wantErr: true},
		{name: "no color", line: "a c", cpp: 1, wantErr: true},
		{name: "mono key", line: "a m #000000", cpp: 1, wantErr: true},
		{name: "named color", line: "a c red", cpp: 1, wantErr: true},
		{name: "short hex", line: "a c #FFF", cpp: 1, wantErr: true},
		{name: "bad hex", line: "a c #GG0000", cpp: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, got, err := parseXPMColor(tt.line, tt.cpp)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedImage) {
					t.Fatalf("err = %v, want ErrMalformedImage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != tt.key {
				t.Errorf("key = %q, want %q", key, tt.key)
			}
			if got != tt.want {
				t.Errorf("color = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- ParseXPM ---

func TestParseXPM_Pixels(t *testing.T) {
	img, err := ParseXPM(tiny)
	if err != nil {
		t.Fatalf("ParseXPM: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v, want 3x2", got)
	}

	none := color.NRGBA{}
	red := color.NRGBA{0xff, 0, 0, 0xff}
	gray := color.NRGBA{0x80, 0x80, 0x80, 0xff}
	want := [][]color.NRGBA{
		{none, red, gray},
		{gray, red, none},
	}
	for y, row := range want {
		for x, c := range row {
			if got := img.NRGBAAt(x, y); got != c {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestParseXPM_AlphaIsBinary(t *testing.T) {
	img, err := ParseXPM(tiny)
	if err != nil {
		t.Fatalf("ParseXPM: %v", err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if a := img.Pix[i]; a != 0 && a != 0xff {
			t.Fatalf("alpha %d at byte %d, want 0 or 255", a, i)
		}
	}
}

func TestParseXPM_Deterministic(t *testing.T) {
	a, err := ParseXPM(tiny)
	if err != nil {
		t.Fatalf("ParseXPM: %v", err)
	}
	b, err := ParseXPM(tiny)
	if err != nil {
		t.Fatalf("ParseXPM: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two decodes of the same lines differ")
	}
}

func TestParseXPM_IgnoresTrailingBytes(t *testing.T) {
	lines := []string{"2 1 1 1", "x c #010203", "xx trailing"}
	img, err := ParseXPM(lines)
	if err != nil {
		t.Fatalf("ParseXPM: %v", err)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{1, 2, 3, 0xff}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestParseXPM_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"bad header", []string{"2 1 1"}},
		{"missing palette", []string{"2 1 2 1", "a c #000000"}},
		{"bad palette", []string{"2 1 1 1", "a c blue", "aa"}},
		{"duplicate key", []string{"2 1 2 1", "a c #000000", "a c #FFFFFF", "aa"}},
		{"missing row", []string{"2 2 1 1", "a c #000000", "aa"}},
		{"short row", []string{"2 1 1 1", "a c #000000", "a"}},
		{"unknown key", []string{"2 1 1 1", "a c #000000", "ab"}},
		{"huge width", []string{"2305843009213693952 1 1 1", "a c #000000", "a"}},
		{"huge height", []string{"1 2305843009213693952 1 1", "a c #000000", "a"}},
		{"widest with short row", []string{"4096 1 1 1", "a c #000000", "a"}},
		{"late short row", []string{"3 3 1 1", "a c #000000", "aaa", "aaa", "aa"}},
		{"too many colors", append([]string{"1 1 65 1"}, strings.Split(strings.Repeat("a c None\n", 65), "\n")...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseXPM(tt.lines)
			if !errors.Is(err, ErrMalformedImage) {
				t.Fatalf("err = %v, want ErrMalformedImage", err)
			}
			if img != nil {
				t.Error("image returned alongside error")
			}
		})
	}
}

// --- DecodeXPM ---

const tinyFile = `/* XPM */
static char *tiny[] = {
/* columns rows colors chars-per-pixel */
"3 2 3 2",
".. c None",
"rr c #FF0000",
"gg g #808080",
/* pixels */
"..rrgg",
"ggrr.."
};
`

func TestDecodeXPM_MatchesParseXPM(t *testing.T) {
	got, err := DecodeXPM(strings.NewReader(tinyFile))
	if err != nil {
		t.Fatalf("DecodeXPM: %v", err)
	}
	want, err := ParseXPM(tiny)
	if err != nil {
		t.Fatalf("ParseXPM: %v", err)
	}
	if diff := cmp.Diff(want.Pix, got.(*image.NRGBA).Pix); diff != "" {
		t.Errorf("pixel mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeXPM_RegisteredFormat(t *testing.T) {
	img, format, err := image.Decode(strings.NewReader(tinyFile))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "xpm" {
		t.Errorf("format = %q, want xpm", format)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	cfg, format, err := image.DecodeConfig(strings.NewReader(tinyFile))
	if err != nil {
		t.Fatalf("image.DecodeConfig: %v", err)
	}
	if format != "xpm" || cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("config = %q %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestDecodeXPM_UnterminatedString(t *testing.T) {
	_, err := DecodeXPM(strings.NewReader("/* XPM */\n\"3 2 3 2"))
	if !errors.Is(err, ErrMalformedImage) {
		t.Fatalf("err = %v, want ErrMalformedImage", err)
	}
}

func TestDecodeXPMConfig_NoStrings(t *testing.T) {
	_, err := DecodeXPMConfig(strings.NewReader("/* XPM */\nstatic char *x[] = {};"))
	if !errors.Is(err, ErrMalformedImage) {
		t.Fatalf("err = %v, want ErrMalformedImage", err)
	}
}

func TestDecodeXPM_BadDimensions(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"huge width", "/* XPM */\nstatic char *x[] = {\n\"2305843009213693952 1 1 1\",\n\"a c #000000\",\n\"a\"\n};\n"},
		{"short row", "/* XPM */\nstatic char *x[] = {\n\"64 1 1 1\",\n\"a c #000000\",\n\"a\"\n};\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeXPM(strings.NewReader(tt.file))
			if !errors.Is(err, ErrMalformedImage) {
				t.Fatalf("DecodeXPM err = %v, want ErrMalformedImage", err)
			}
			if img != nil {
				t.Error("image returned alongside error")
			}
			if _, _, err := image.Decode(strings.NewReader(tt.file)); !errors.Is(err, ErrMalformedImage) {
				t.Errorf("image.Decode err = %v, want ErrMalformedImage", err)
			}
		})
	}
}
