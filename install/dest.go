package install

import "path"

// Override is the default destination folder for patched resources.
const Override = "Override"

// Destination places a resource inside the target installation: either a
// folder relative to the installation root, or an entry inside a container
// archive (Archive set to the archive's path, Folder unused for lookup).
type Destination struct {
	Folder  string
	Archive string
}

func InFolder(folder string) Destination {
	return Destination{Folder: folder}
}

func InArchive(archive string) Destination {
	return Destination{Archive: archive}
}

// IsArchive reports whether the destination addresses an archive entry.
func (d Destination) IsArchive() bool {
	return d.Archive != ""
}

func (d Destination) String() string {
	if d.IsArchive() {
		return d.Archive
	}
	if d.Folder == "" {
		return "."
	}
	return d.Folder
}

// Join returns the destination-relative path of a named resource, for
// folder destinations.
func (d Destination) Join(name string) string {
	return path.Join(d.Folder, name)
}
