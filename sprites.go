package toasters

import (
	"embed"
	"fmt"
	"image"
)

//go:embed assets/*.xpm
var assets embed.FS

// SpriteSet holds every decoded sprite. The images are shared read-only by
// all entities of a kind and must not be modified.
type SpriteSet struct {
	Toaster [ToasterFrameCount]*image.NRGBA
	Toast   *image.NRGBA
}

// Sprite returns the image for kind and frame. Frame is ignored for
// KindToast and wrapped into range for KindToaster.
func (s *SpriteSet) Sprite(kind Kind, frame int) *image.NRGBA {
	if kind == KindToast {
		return s.Toast
	}
	return s.Toaster[frame%ToasterFrameCount]
}

// LoadSprites decodes the compiled-in sprites. Any decode failure is
// fatal: the set is either complete or not returned.
func LoadSprites() (*SpriteSet, error) {
	var set SpriteSet
	for i := range set.Toaster {
		img, err := loadSprite(fmt.Sprintf("assets/toaster%d.xpm", i))
		if err != nil {
			return nil, err
		}
		set.Toaster[i] = img
	}
	img, err := loadSprite("assets/toast.xpm")
	if err != nil {
		return nil, err
	}
	set.Toast = img
	return &set, nil
}

func loadSprite(name string) (*image.NRGBA, error) {
	f, err := assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("toasters: open sprite: %w", err)
	}
	defer f.Close()

	img, err := DecodeXPM(f)
	if err != nil {
		return nil, fmt.Errorf("toasters: decode %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Dx() != SpriteSize || b.Dy() != SpriteSize {
		return nil, fmt.Errorf("toasters: decode %s: %w: sprite is %dx%d, want %dx%d",
			name, ErrMalformedImage, b.Dx(), b.Dy(), SpriteSize, SpriteSize)
	}
	return img.(*image.NRGBA), nil
}
