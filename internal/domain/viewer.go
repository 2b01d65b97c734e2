package domain

// Viewer identifies the privilege level of the user browsing the directory.
// Privileged viewers see private packs; everyone else does not.
type Viewer struct {
	Privileged bool
}

// CanSee reports whether the viewer may see a pack with the given privacy flag.
func (v Viewer) CanSee(private bool) bool {
	return !private || v.Privileged
}
