// Package asset loads the sprite sheets and the font the game draws with.
package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // sprite sheets are PNG
	"io/fs"
	"os"
	"path"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/object"
)

// ErrMissingAsset is wrapped by every asset loading failure.
var ErrMissingAsset = errors.New("missing asset")

// Logical sprite sheet names. Each is stored as sprites/<name>.png.
const (
	Ship           = "ship"
	AsteroidSmall  = "asteroid-small"
	AsteroidMedium = "asteroid-medium"
	AsteroidLarge  = "asteroid-large"
	Projectile     = "projectile"
	Explosion      = "explosion"
	Life           = "life"
	LifeLoss       = "life-loss"
)

// sheetFrames lists every sheet with its frame count.
func sheetFrames(cfg config.Config) []struct {
	name   string
	frames int
} {
	return []struct {
		name   string
		frames int
	}{
		{Ship, 1},
		{AsteroidSmall, 1},
		{AsteroidMedium, 1},
		{AsteroidLarge, 1},
		{Projectile, 1},
		{Explosion, cfg.Animation.ExplosionFrames},
		{Life, 1},
		{LifeLoss, cfg.Animation.LifeLossFrames},
	}
}

// Store holds every loaded asset. It is read-only after Load and may be
// shared between games.
type Store struct {
	images map[string]image.Image
	sheets object.Sheets
	font   *opentype.Font
}

// Load reads the assets from the directory and font path in cfg.
func Load(cfg config.Config, logger *log.Logger) (*Store, error) {
	return LoadFS(os.DirFS(cfg.Assets.Dir), cfg, logger)
}

// LoadFS reads sprite sheets from fsys. Every failure is logged and the
// combined error is returned, so one run reports all missing files.
func LoadFS(fsys fs.FS, cfg config.Config, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		images: make(map[string]image.Image),
	}

	sheets := make(map[string]object.Sheet)
	var errs []error
	for _, sf := range sheetFrames(cfg) {
		p := path.Join("sprites", sf.name+".png")
		img, err := decodeImage(fsys, p)
		if err != nil {
			logger.Error("could not load sprite", "path", p, "error", err)
			errs = append(errs, err)
			continue
		}
		sheet, err := sheetFor(sf.name, img.Bounds(), sf.frames)
		if err != nil {
			logger.Error("bad sprite sheet", "path", p, "error", err)
			errs = append(errs, err)
			continue
		}
		s.images[sf.name] = img
		sheets[sf.name] = sheet
	}

	f, err := loadFont(cfg.Assets.FontPath)
	if err != nil {
		logger.Error("could not load font", "path", cfg.Assets.FontPath, "error", err)
		errs = append(errs, err)
	}
	s.font = f

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	s.sheets = object.Sheets{
		Ship:           sheets[Ship],
		AsteroidSmall:  sheets[AsteroidSmall],
		AsteroidMedium: sheets[AsteroidMedium],
		AsteroidLarge:  sheets[AsteroidLarge],
		Projectile:     sheets[Projectile],
		Explosion:      sheets[Explosion],
		Life:           sheets[Life],
		LifeLoss:       sheets[LifeLoss],
	}
	logger.Debug("assets loaded", "sheets", len(s.images))
	return s, nil
}

func decodeImage(fsys fs.FS, p string) (image.Image, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingAsset, p, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrMissingAsset, p, err)
	}
	return img, nil
}

// sheetFor splits an image into equal horizontal frames.
func sheetFor(name string, b image.Rectangle, frames int) (object.Sheet, error) {
	if frames < 1 || b.Dx() < frames || b.Dx()%frames != 0 {
		return object.Sheet{}, fmt.Errorf("%w: %s is %dpx wide, not divisible into %d frames",
			ErrMissingAsset, name, b.Dx(), frames)
	}
	return object.Sheet{
		Name:        name,
		FrameWidth:  b.Dx() / frames,
		FrameHeight: b.Dy(),
		Frames:      frames,
	}, nil
}

func loadFont(p string) (*opentype.Font, error) {
	data := goregular.TTF
	if p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: font %s: %w", ErrMissingAsset, p, err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font %s: %w", ErrMissingAsset, p, err)
	}
	return f, nil
}

// Sheets returns the frame layout of every sprite sheet.
func (s *Store) Sheets() object.Sheets {
	return s.sheets
}

// Image returns the decoded sheet image for a logical name, or nil.
func (s *Store) Image(name string) image.Image {
	return s.images[name]
}

// Font returns the parsed font.
func (s *Store) Font() *opentype.Font {
	return s.font
}

// NewFace returns a font face at the given pixel size. Faces are not safe
// for concurrent use, so each renderer keeps its own.
func (s *Store) NewFace(size float64) (font.Face, error) {
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face of size %v: %w", size, err)
	}
	return face, nil
}
