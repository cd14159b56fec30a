// Package packer fits catalogued files onto fixed-capacity disks.
//
// Packing is greedy first-fit descending: files are visited largest first
// and each goes onto the first disk, in creation order, with enough free
// space. A new disk is opened only when none fits. The result is
// deterministic but not necessarily the minimum number of disks.
package packer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/harrison/filekit/internal/models"
)

// Pack distributes files over disks of the given capacity.
//
// The files slice is not reordered; the returned disks point into it.
// Every file must already satisfy 0 <= Size <= capacity. Pack panics on a
// non-positive capacity or an invalid record, both of which mean the
// catalog was not validated.
func Pack(files []models.FileRecord, capacity int64) []*models.Disk {
	if capacity <= 0 {
		panic(fmt.Sprintf("packer: invalid disk capacity %d", capacity))
	}

	var disks []*models.Disk
	for _, i := range descendingOrder(files) {
		file := &files[i]
		if err := file.Validate(capacity); err != nil {
			panic("packer: " + err.Error())
		}

		added := false
		for _, disk := range disks {
			if disk.Add(file) {
				added = true
				break
			}
		}
		if added {
			continue
		}

		disk := models.NewDisk(len(disks)+1, capacity)
		if !disk.Add(file) {
			panic(fmt.Sprintf("packer: %s (%d bytes) does not fit an empty disk of %d bytes", file.Path, file.Size, capacity))
		}
		disks = append(disks, disk)
	}

	return disks
}

// descendingOrder returns catalog indices sorted by size, largest first.
// Equal sizes keep their catalog order.
func descendingOrder(files []models.FileRecord) []int {
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(files[b].Size, files[a].Size)
	})
	return order
}

// Stats summarizes a packing
type Stats struct {
	Disks     int
	Files     int
	UsedBytes int64
	FreeBytes int64
}

// Summary totals the disks produced by Pack
func Summary(disks []*models.Disk) Stats {
	var s Stats
	s.Disks = len(disks)
	for _, d := range disks {
		s.Files += len(d.Files)
		s.UsedBytes += d.Used()
		s.FreeBytes += d.Free
	}
	return s
}
