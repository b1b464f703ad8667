package games

import "github.com/minaorangina/patience"

// All returns fresh definitions of every game in this package
func All() []*patience.Definition {
	return []*patience.Definition{GrandfathersClock(), Dial(), Hemispheres()}
}

// Register adds every game to r
func Register(r *patience.Registry) error {
	for _, d := range All() {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every game
func NewRegistry() (*patience.Registry, error) {
	r := patience.NewRegistry()
	if err := Register(r); err != nil {
		return nil, err
	}
	return r, nil
}
