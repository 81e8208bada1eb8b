package engine

import (
	"fmt"

	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/render"
)

// Entity is the unit of simulation and rendering
// Kinds embed Component, which supplies Render/Destroy and a no-op Update
type Entity interface {
	// Core returns the embedded base state
	Core() *Component

	// Update advances simulation state for tick, must not write to the surface
	Update(tick uint64)

	// Render synchronizes changed attributes to the surface
	Render(s render.Surface) error

	// Destroy releases the surface handle, at most once
	Destroy(s render.Surface) error
}

// Remover is the back-reference an entity uses to request its own removal
type Remover interface {
	RemoveEntity(e Entity)
}

// Component is the base entity state
type Component struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64 // radians
	Opacity       float64 // written clamped to [0,1], stored as is
	Color         core.RGB
	ZIndex        int // draw order, ties broken by insertion order

	self      Entity
	owner     Remover
	handle    render.Handle
	shadow    Shadow
	destroyed bool
}

// NewComponent returns a fully opaque component at x, y
func NewComponent(x, y, width, height float64) Component {
	return Component{
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		Opacity: 1,
	}
}

// Core implements Entity
func (c *Component) Core() *Component {
	return c
}

// Update implements Entity, base components are static
func (c *Component) Update(tick uint64) {}

// Handle returns the surface handle, zero before the first render
func (c *Component) Handle() render.Handle {
	return c.handle
}

// Shadow returns the last-rendered attribute copy
func (c *Component) Shadow() Shadow {
	return c.shadow
}

// Destroyed reports whether the handle was released
func (c *Component) Destroyed() bool {
	return c.destroyed
}

// Registered reports whether the entity has an owner to remove it
func (c *Component) Registered() bool {
	return c.owner != nil
}

// Remove requests removal from the owning registry, applied at the next commit
// Returns false if the entity was never registered
func (c *Component) Remove() bool {
	if c.owner == nil || c.self == nil {
		return false
	}
	c.owner.RemoveEntity(c.self)
	return true
}

// attach binds the registry back-reference, self is the outer entity embedding c
func (c *Component) attach(self Entity, owner Remover) {
	c.self = self
	c.owner = owner
}

// Render implements Entity
// First call creates the handle with every attribute and assigns the stack order;
// later calls write only attributes that differ from the shadow. The first failed
// write aborts the entity for this pass; the shadow keeps the last written values
// so the write is retried next pass
func (c *Component) Render(s render.Surface) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.handle == 0 {
		return c.create(s)
	}
	return c.sync(s)
}

func (c *Component) create(s render.Surface) error {
	cur := shadowOf(c)
	h, err := s.CreateHandle(render.Attrs{
		render.AttrX:        cur.X,
		render.AttrY:        cur.Y,
		render.AttrWidth:    cur.Width,
		render.AttrHeight:   cur.Height,
		render.AttrRotation: cur.Rotation,
		render.AttrOpacity:  cur.Opacity,
		render.AttrColor:    cur.Color,
	})
	if err != nil {
		return fmt.Errorf("create handle: %w", err)
	}
	c.handle = h
	c.shadow = cur
	c.shadow.Stacked = false
	return c.syncStack(s, cur.ZIndex)
}

func (c *Component) sync(s render.Surface) error {
	cur := shadowOf(c)
	sh := &c.shadow

	floats := [...]struct {
		name render.Attr
		val  float64
		last *float64
	}{
		{render.AttrX, cur.X, &sh.X},
		{render.AttrY, cur.Y, &sh.Y},
		{render.AttrWidth, cur.Width, &sh.Width},
		{render.AttrHeight, cur.Height, &sh.Height},
		{render.AttrRotation, cur.Rotation, &sh.Rotation},
		{render.AttrOpacity, cur.Opacity, &sh.Opacity},
	}
	for _, f := range floats {
		if f.val == *f.last {
			continue
		}
		if err := s.SetAttribute(c.handle, f.name, f.val); err != nil {
			return fmt.Errorf("set %s: %w", f.name, err)
		}
		*f.last = f.val
	}

	if cur.Color != sh.Color {
		if err := s.SetAttribute(c.handle, render.AttrColor, cur.Color); err != nil {
			return fmt.Errorf("set %s: %w", render.AttrColor, err)
		}
		sh.Color = cur.Color
	}

	return c.syncStack(s, cur.ZIndex)
}

func (c *Component) syncStack(s render.Surface, z int) error {
	if c.shadow.Stacked && c.shadow.ZIndex == z {
		return nil
	}
	if err := s.SetStackOrder(c.handle, z); err != nil {
		return fmt.Errorf("set stack order: %w", err)
	}
	c.shadow.ZIndex = z
	c.shadow.Stacked = true
	return nil
}

// SyncAttr writes a kind-specific attribute when value differs from *last
// Value must be comparable; *last is updated only after a successful write
func (c *Component) SyncAttr(s render.Surface, name render.Attr, value any, last *any) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.handle == 0 {
		return ErrNotRendered
	}
	if *last == value {
		return nil
	}
	if err := s.SetAttribute(c.handle, name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	*last = value
	return nil
}

// Destroy implements Entity
func (c *Component) Destroy(s render.Surface) error {
	if c.destroyed {
		return nil
	}
	c.destroyed = true
	h := c.handle
	c.handle = 0
	if h == 0 {
		return nil
	}
	if err := s.DestroyHandle(h); err != nil {
		return fmt.Errorf("destroy handle: %w", err)
	}
	return nil
}
