package render

// Image is the metadata the simulation needs about a loaded image.
type Image struct {
	Name   string
	W, H   float64
	Frames int
}

// Catalog resolves image names. A missing image is reported with ok=false;
// callers skip whatever needed it.
type Catalog interface {
	Lookup(name string) (img Image, ok bool)
}

// MapCatalog is a Catalog backed by a map.
type MapCatalog map[string]Image

// Lookup implements Catalog.
func (m MapCatalog) Lookup(name string) (Image, bool) {
	img, ok := m[name]
	return img, ok
}
