/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package resolvable

import (
	"time"

	"github.com/docker/go-units"
)

// Common holds the attributes shared by all kinds that the resolver itself
// does not reason about. A record may inherit them from another record
// through its shared data tag.
type Common struct {
	Vendor           string    `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Summary          string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description      string    `json:"description,omitempty" yaml:"description,omitempty"`
	LicenseToConfirm string    `json:"licenseToConfirm,omitempty" yaml:"licenseToConfirm,omitempty"`
	InsNotify        string    `json:"insnotify,omitempty" yaml:"insnotify,omitempty"`
	DelNotify        string    `json:"delnotify,omitempty" yaml:"delnotify,omitempty"`
	InstalledSize    ByteCount `json:"installedSize,omitempty" yaml:"installedSize,omitempty"`
	DownloadSize     ByteCount `json:"downloadSize,omitempty" yaml:"downloadSize,omitempty"`
	BuildTime        time.Time `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
	// InstallTime is zero unless the record describes an installed item.
	InstallTime time.Time `json:"installTime,omitempty" yaml:"installTime,omitempty"`
	// InstallOnly and MediaNr are passed through untouched.
	InstallOnly bool   `json:"installOnly,omitempty" yaml:"installOnly,omitempty"`
	MediaNr     uint   `json:"mediaNr,omitempty" yaml:"mediaNr,omitempty"`
	Repository  string `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// ByteCount is a size in bytes.
type ByteCount int64

// String renders b with binary units, e.g. 1.5MiB.
func (b ByteCount) String() string {
	return units.BytesSize(float64(b))
}

// OnMediaLocation locates a file on the media of a repository.
type OnMediaLocation struct {
	MediaNr      uint      `json:"mediaNr,omitempty" yaml:"mediaNr,omitempty"`
	Filename     string    `json:"filename,omitempty" yaml:"filename,omitempty"`
	Checksum     string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	DownloadSize ByteCount `json:"downloadSize,omitempty" yaml:"downloadSize,omitempty"`
}

// DiskUsageEntry is the space used by a resolvable below one directory.
type DiskUsageEntry struct {
	Dir   string    `json:"dir" yaml:"dir"`
	Size  ByteCount `json:"size" yaml:"size"`
	Files int       `json:"files" yaml:"files"`
}

type DiskUsage []DiskUsageEntry

// Total sums the sizes of all entries.
func (d DiskUsage) Total() ByteCount {
	var total ByteCount
	for _, e := range d {
		total += e.Size
	}
	return total
}

type ChangelogEntry struct {
	Date   time.Time `json:"date" yaml:"date"`
	Author string    `json:"author" yaml:"author"`
	Text   string    `json:"text" yaml:"text"`
}
