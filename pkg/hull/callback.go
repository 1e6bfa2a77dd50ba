package hull

// Callback receives synchronous notifications at the moment a face is
// created or destroyed, letting an external consumer (such as a render
// cache) track boundary changes without polling. Implementations must not
// mutate the polyhedron that invoked them.
type Callback interface {
	FaceWasCreated(f *Face)
	FaceWillBeDeleted(f *Face)
}

// nopCallback is the default callback; it ignores all notifications.
type nopCallback struct{}

func (nopCallback) FaceWasCreated(*Face)    {}
func (nopCallback) FaceWillBeDeleted(*Face) {}
