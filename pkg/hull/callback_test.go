package hull

import (
	"testing"
)

// recordingCallback counts face lifecycle notifications.
type recordingCallback struct {
	created int
	deleted int
	// live tracks faces reported created and not yet reported deleted.
	live map[*Face]bool
}

func newRecordingCallback() *recordingCallback {
	return &recordingCallback{live: make(map[*Face]bool)}
}

func (c *recordingCallback) FaceWasCreated(f *Face) {
	c.created++
	c.live[f] = true
}

func (c *recordingCallback) FaceWillBeDeleted(f *Face) {
	c.deleted++
	delete(c.live, f)
}

func TestCallbackSeesEveryFace(t *testing.T) {
	cb := newRecordingCallback()
	p := NewWithCallback(cb)
	p.AddPoints(tetrahedron())
	mustHoldInvariants(t, p)

	if cb.created == 0 {
		t.Fatal("no face creations reported")
	}
	if len(cb.live) != p.FaceCount() {
		t.Errorf("callback tracks %d live faces, polyhedron has %d", len(cb.live), p.FaceCount())
	}
	if cb.created-cb.deleted != p.FaceCount() {
		t.Errorf("created(%d) - deleted(%d) = %d, want face count %d",
			cb.created, cb.deleted, cb.created-cb.deleted, p.FaceCount())
	}

	// Live faces reported by the callback are exactly the current faces.
	for _, f := range p.Faces() {
		if !cb.live[f] {
			t.Errorf("face %p was never reported as created", f)
		}
	}
}

func TestCallbackBalancesAcrossMutations(t *testing.T) {
	cb := newRecordingCallback()
	p := NewWithCallback(cb)
	p.AddPoints(cube(8))

	// Growing, cutting and re-growing must keep the ledger balanced.
	p.AddPoint(vec(16, 16, 16))
	p.RemoveVertex(p.FindVertex(vec(16, 16, 16)))
	p.AddPoint(vec(-8, -8, -8))
	mustHoldInvariants(t, p)

	if cb.created-cb.deleted != p.FaceCount() {
		t.Errorf("created(%d) - deleted(%d) = %d, want face count %d",
			cb.created, cb.deleted, cb.created-cb.deleted, p.FaceCount())
	}
	if len(cb.live) != p.FaceCount() {
		t.Errorf("callback tracks %d live faces, polyhedron has %d", len(cb.live), p.FaceCount())
	}
}

func TestCallbackOnPolygonRebuild(t *testing.T) {
	cb := newRecordingCallback()
	p := NewWithCallback(cb)

	p.AddPoints(tetrahedron()[:3])
	if cb.created != 1 {
		t.Fatalf("created = %d after first polygon, want 1", cb.created)
	}

	// Folding a coplanar point in rebuilds the polygon: one deletion, one
	// creation.
	p.AddPoint(vec(8, 8, 0))
	if cb.created != 2 || cb.deleted != 1 {
		t.Errorf("created/deleted = %d/%d after rebuild, want 2/1", cb.created, cb.deleted)
	}
}
