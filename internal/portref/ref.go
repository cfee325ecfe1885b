// internal/portref/ref.go
package portref

import "github.com/specialistvlad/schedgrid/internal/schedule"

// String serializes the Ref into its canonical textual form. The default "all"
// port is left implicit.
func (r Ref) String() string {
	port := r.Port
	if port == schedule.AllPortName {
		port = ""
	}
	switch {
	case port == "":
		return r.Node
	case r.IsSelf():
		return r.Node + port
	default:
		return r.Node + "." + port
	}
}
