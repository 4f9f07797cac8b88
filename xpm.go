package toasters

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
	"text/scanner"
)

// ErrMalformedImage is wrapped by every XPM decode failure.
var ErrMalformedImage = errors.New("toasters: malformed image")

// XPM limits. Palettes larger than maxXPMColors, keys wider than
// maxXPMCharsPerPixel and sides longer than maxXPMDimension are rejected
// before any pixel row is read.
const (
	maxXPMColors        = 64
	maxXPMCharsPerPixel = 4
	maxXPMDimension     = 4096
	xpmTransparent      = "None"
	xpmMagic            = "/* XPM */"
)

func init() {
	image.RegisterFormat("xpm", xpmMagic, DecodeXPM, DecodeXPMConfig)
}

// XPMHeader is the first value line of an XPM image.
type XPMHeader struct {
	Width         int
	Height        int
	Colors        int
	CharsPerPixel int
}

// ParseXPMHeader parses "width height colors chars_per_pixel". Trailing
// fields (hotspot, XPMEXT) are ignored. Out-of-range values are rejected.
func ParseXPMHeader(line string) (XPMHeader, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return XPMHeader{}, fmt.Errorf("%w: header %q needs 4 fields", ErrMalformedImage, line)
	}
	var vals [4]int
	for i := range vals {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return XPMHeader{}, fmt.Errorf("%w: header field %d: %v", ErrMalformedImage, i, err)
		}
		vals[i] = v
	}
	h := XPMHeader{Width: vals[0], Height: vals[1], Colors: vals[2], CharsPerPixel: vals[3]}
	switch {
	case h.Width <= 0 || h.Height <= 0 || h.Width > maxXPMDimension || h.Height > maxXPMDimension:
		return h, fmt.Errorf("%w: size %dx%d not within 1..%d", ErrMalformedImage, h.Width, h.Height, maxXPMDimension)
	case h.Colors <= 0 || h.Colors > maxXPMColors:
		return h, fmt.Errorf("%w: color count %d not in 1..%d", ErrMalformedImage, h.Colors, maxXPMColors)
	case h.CharsPerPixel <= 0 || h.CharsPerPixel > maxXPMCharsPerPixel:
		return h, fmt.Errorf("%w: chars per pixel %d not in 1..%d", ErrMalformedImage, h.CharsPerPixel, maxXPMCharsPerPixel)
	}
	return h, nil
}

// parseXPMColor parses one palette line: a CharsPerPixel wide key, a key
// type ("c" or "g") and a color value ("None" or "#RRGGBB").
func parseXPMColor(line string, cpp int) (string, color.NRGBA, error) {
	if len(line) < cpp {
		return "", color.NRGBA{}, fmt.Errorf("%w: palette line %q shorter than key", ErrMalformedImage, line)
	}
	key := line[:cpp]
	fields := strings.Fields(line[cpp:])
	if len(fields) < 2 {
		return key, color.NRGBA{}, fmt.Errorf("%w: palette entry %q has no color", ErrMalformedImage, key)
	}
	if fields[0] != "c" && fields[0] != "g" {
		return key, color.NRGBA{}, fmt.Errorf("%w: palette entry %q has key type %q", ErrMalformedImage, key, fields[0])
	}
	value := fields[1]
	if strings.EqualFold(value, xpmTransparent) {
		return key, color.NRGBA{}, nil
	}
	if len(value) != 7 || value[0] != '#' {
		return key, color.NRGBA{}, fmt.Errorf("%w: palette entry %q color %q", ErrMalformedImage, key, value)
	}
	rgb, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return key, color.NRGBA{}, fmt.Errorf("%w: palette entry %q color %q", ErrMalformedImage, key, value)
	}
	return key, color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}, nil
}

// ParseXPM decodes the value lines of an XPM image (header, palette,
// pixel rows, without quotes) into a new NRGBA image. Transparent palette
// entries decode to alpha 0, everything else to alpha 255. Pixel keys
// not present in the palette are an error, as are missing or short rows.
// Bytes after the declared row width are ignored.
func ParseXPM(lines []string) (*image.NRGBA, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no header", ErrMalformedImage)
	}
	h, err := ParseXPMHeader(lines[0])
	if err != nil {
		return nil, err
	}
	if len(lines) < 1+h.Colors {
		return nil, fmt.Errorf("%w: %d palette lines declared, %d present", ErrMalformedImage, h.Colors, len(lines)-1)
	}

	palette := make(map[string]color.NRGBA, h.Colors)
	for _, line := range lines[1 : 1+h.Colors] {
		key, c, err := parseXPMColor(line, h.CharsPerPixel)
		if err != nil {
			return nil, err
		}
		if _, dup := palette[key]; dup {
			return nil, fmt.Errorf("%w: duplicate palette key %q", ErrMalformedImage, key)
		}
		palette[key] = c
	}

	rows := lines[1+h.Colors:]
	if len(rows) < h.Height {
		return nil, fmt.Errorf("%w: %d rows declared, %d present", ErrMalformedImage, h.Height, len(rows))
	}

	rowBytes := h.Width * h.CharsPerPixel
	for y, row := range rows[:h.Height] {
		if len(row) < rowBytes {
			return nil, fmt.Errorf("%w: row %d has %d bytes, want %d", ErrMalformedImage, y, len(row), rowBytes)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.Width, h.Height))
	for y := 0; y < h.Height; y++ {
		row := rows[y]
		for x := 0; x < h.Width; x++ {
			key := row[x*h.CharsPerPixel : (x+1)*h.CharsPerPixel]
			c, ok := palette[key]
			if !ok {
				return nil, fmt.Errorf("%w: unknown pixel key %q at (%d,%d)", ErrMalformedImage, key, x, y)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// readXPMStrings returns the string literals of a C style XPM file in
// order. Comments are skipped.
func readXPMStrings(r io.Reader, limit int) ([]string, error) {
	var s scanner.Scanner
	s.Init(bufio.NewReader(r))
	s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	var errs []string
	s.Error = func(_ *scanner.Scanner, msg string) { errs = append(errs, msg) }

	var out []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		if tok != scanner.String {
			continue
		}
		v, err := strconv.Unquote(s.TokenText())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedImage, s.Position, err)
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedImage, errs[0])
	}
	return out, nil
}

// DecodeXPM reads a C source XPM file and decodes it. It has the
// signature required by image.RegisterFormat.
func DecodeXPM(r io.Reader) (image.Image, error) {
	lines, err := readXPMStrings(r, 0)
	if err != nil {
		return nil, err
	}
	return ParseXPM(lines)
}

// DecodeXPMConfig returns the dimensions of an XPM file without decoding
// the pixel rows.
func DecodeXPMConfig(r io.Reader) (image.Config, error) {
	lines, err := readXPMStrings(r, 1)
	if err != nil {
		return image.Config{}, err
	}
	if len(lines) == 0 {
		return image.Config{}, fmt.Errorf("%w: no header", ErrMalformedImage)
	}
	h, err := ParseXPMHeader(lines[0])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.Width, Height: h.Height}, nil
}
