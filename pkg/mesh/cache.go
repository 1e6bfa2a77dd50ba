package mesh

import (
	"github.com/chazu/convex/pkg/hull"
)

// Compile-time interface check.
var _ hull.Callback = (*Cache)(nil)

// Cache is a lazily rebuilt mesh for one polyhedron. Installed as the
// polyhedron's callback it learns about every face creation and deletion
// the moment it happens and marks itself dirty; the mesh is rebuilt on the
// next request. The callback only flips a flag and never touches the
// polyhedron, as the kernel requires.
type Cache struct {
	mesh  *Mesh
	dirty bool
}

// NewCache returns an empty, dirty cache.
func NewCache() *Cache {
	return &Cache{dirty: true}
}

// FaceWasCreated implements hull.Callback.
func (c *Cache) FaceWasCreated(*hull.Face) { c.dirty = true }

// FaceWillBeDeleted implements hull.Callback.
func (c *Cache) FaceWillBeDeleted(*hull.Face) { c.dirty = true }

// Dirty reports whether the cached mesh is stale.
func (c *Cache) Dirty() bool { return c.dirty }

// Mesh returns the cached mesh, rebuilding it from the polyhedron if any
// face changed since the last build.
func (c *Cache) Mesh(p *hull.Polyhedron) *Mesh {
	if c.dirty || c.mesh == nil {
		c.mesh = Build(p)
		c.dirty = false
	}
	return c.mesh
}
