package consolesdk

// Visibility decides which pathnames belong to the unauthenticated flow. The
// chrome (header, footer, background verification checks) renders only on
// paths that are NOT in the exclusion list; IsDisplayed returns the raw
// membership test and consumers invert it.
type Visibility struct {
	exclude []string
}

// NewVisibility builds a gate over a fixed exclusion list.
func NewVisibility(exclude ...string) *Visibility {
	return &Visibility{exclude: exclude}
}

// DefaultVisibility excludes the console's unauthenticated-flow routes.
func DefaultVisibility() *Visibility {
	return NewVisibility("/access", "/change", "/reset", "/verify")
}

// IsDisplayed reports whether pathname is a member of the exclusion list.
func (v *Visibility) IsDisplayed(pathname string) bool {
	for _, path := range v.exclude {
		if path == pathname {
			return true
		}
	}
	return false
}
