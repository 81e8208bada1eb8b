package asset

import (
	"image"
	_ "image/png"
	"io/fs"
	"sync"

	"github.com/lixenwraith/sgf/render"
	"github.com/pkg/errors"
)

// DefaultCellPixels is the source pixel width of one terminal cell
const DefaultCellPixels = 4

// SpriteSheet is an image sliced into equally sized frames, row by row
type SpriteSheet struct {
	Name        string
	FrameWidth  int // source pixels
	FrameHeight int // source pixels
	Cols, Rows  int // frames per row and column
	CellsWide   int // frame size in terminal cells
	CellsHigh   int
	frames      []*render.Bitmap
}

// Len returns the number of frames
func (s *SpriteSheet) Len() int {
	return len(s.frames)
}

// Frame returns frame i, indexes wrap so animations can count freely
func (s *SpriteSheet) Frame(i int) *render.Bitmap {
	n := len(s.frames)
	if n == 0 {
		return nil
	}
	i %= n
	if i < 0 {
		i += n
	}
	return s.frames[i]
}

type sheetKey struct {
	name   string
	fw, fh int
}

// Loader reads sprite sheets from a filesystem and caches them by name and frame size
// Used at entity construction time only, never per tick
type Loader struct {
	fsys       fs.FS
	cellPixels int

	mu    sync.Mutex
	cache map[sheetKey]*SpriteSheet
}

// NewLoader creates a loader over fsys, cellPixels <= 0 selects DefaultCellPixels
func NewLoader(fsys fs.FS, cellPixels int) *Loader {
	if cellPixels <= 0 {
		cellPixels = DefaultCellPixels
	}
	return &Loader{
		fsys:       fsys,
		cellPixels: cellPixels,
		cache:      make(map[sheetKey]*SpriteSheet),
	}
}

// LoadSpriteSheet decodes name and slices it into frameWidth x frameHeight frames
func (l *Loader) LoadSpriteSheet(name string, frameWidth, frameHeight int) (*SpriteSheet, error) {
	if frameWidth <= 0 || frameHeight <= 0 {
		return nil, errors.Errorf("sprite sheet %s: invalid frame size %dx%d", name, frameWidth, frameHeight)
	}

	key := sheetKey{name, frameWidth, frameHeight}
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.cache[key]; ok {
		return s, nil
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open sprite sheet %s", name)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode sprite sheet %s", name)
	}

	s, err := l.slice(name, img, frameWidth, frameHeight)
	if err != nil {
		return nil, err
	}
	l.cache[key] = s
	return s, nil
}

func (l *Loader) slice(name string, img image.Image, fw, fh int) (*SpriteSheet, error) {
	b := img.Bounds()
	cols, rows := b.Dx()/fw, b.Dy()/fh
	if cols == 0 || rows == 0 {
		return nil, errors.Errorf("sprite sheet %s: image %dx%d smaller than frame %dx%d",
			name, b.Dx(), b.Dy(), fw, fh)
	}

	// A cell covers cellPixels wide and twice that high
	cw := max(1, (fw+l.cellPixels-1)/l.cellPixels)
	ch := max(1, (fh+2*l.cellPixels-1)/(2*l.cellPixels))

	s := &SpriteSheet{
		Name:        name,
		FrameWidth:  fw,
		FrameHeight: fh,
		Cols:        cols,
		Rows:        rows,
		CellsWide:   cw,
		CellsHigh:   ch,
		frames:      make([]*render.Bitmap, 0, cols*rows),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			origin := image.Pt(b.Min.X+c*fw, b.Min.Y+r*fh)
			rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(fw, fh))}
			s.frames = append(s.frames, convertRegion(img, rect, cw, ch))
		}
	}
	return s, nil
}
