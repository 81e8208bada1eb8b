package render

import "errors"

// ErrUnknownHandle is returned for writes to a handle that was never created or already destroyed
var ErrUnknownHandle = errors.New("render: unknown handle")

// Handle identifies one visual element owned by an entity, zero means none
type Handle uint64

// Attr names a visual attribute on a handle
type Attr string

// Attribute names and their value types
const (
	AttrX        Attr = "x"        // float64, surface units
	AttrY        Attr = "y"        // float64, surface units
	AttrWidth    Attr = "width"    // float64
	AttrHeight   Attr = "height"   // float64
	AttrRotation Attr = "rotation" // float64, radians
	AttrOpacity  Attr = "opacity"  // float64, already clamped to [0,1]
	AttrColor    Attr = "color"    // core.RGB
	AttrFrame    Attr = "frame"    // *Bitmap, sprite frame
	AttrGlyph    Attr = "glyph"    // string, text fallback for sprites
)

// Attrs is an attribute set used at handle creation
type Attrs map[Attr]any

// Surface is the display collaborator the render phase writes to
// Attribute writes are idempotent; DestroyHandle is called at most once per handle
type Surface interface {
	CreateHandle(initial Attrs) (Handle, error)
	SetAttribute(h Handle, name Attr, value any) error
	SetStackOrder(h Handle, key int) error
	DestroyHandle(h Handle) error
}

// Presenter is optionally implemented by surfaces that composite a frame after the render pass
// Returns true if anything was drawn
type Presenter interface {
	Present() bool
}
