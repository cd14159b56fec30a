package models

import "math"

// Disk is a fixed-capacity container that files are packed onto.
//
// A disk never owns its files: Files points into the catalog slice the
// packer was given, so a record is shared, never copied.
type Disk struct {
	ID       int           `yaml:"id"`       // 1-based, assigned in creation order
	Capacity int64         `yaml:"capacity"` // Same for every disk in a run
	Free     int64         `yaml:"free"`     // Remaining bytes, never negative
	Files    []*FileRecord `yaml:"files"`    // In insertion order
}

// NewDisk returns an empty disk with all of its capacity free
func NewDisk(id int, capacity int64) *Disk {
	return &Disk{
		ID:       id,
		Capacity: capacity,
		Free:     capacity,
	}
}

// Add places the file on the disk if it fits and reports whether it did.
// Free is only decremented on success.
func (d *Disk) Add(f *FileRecord) bool {
	if d.Free < f.Size {
		return false
	}
	d.Files = append(d.Files, f)
	d.Free -= f.Size
	return true
}

// Used returns the number of bytes taken by the disk's files
func (d *Disk) Used() int64 {
	return d.Capacity - d.Free
}

// FreePercent returns the free space as a truncated integer percentage
func (d *Disk) FreePercent() int {
	if d.Capacity <= 0 {
		return 0
	}
	if d.Free > math.MaxInt64/100 {
		// Free*100 would overflow; capacities this large are at least 100 bytes
		return int(d.Free / (d.Capacity / 100))
	}
	return int(d.Free * 100 / d.Capacity)
}
