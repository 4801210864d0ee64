/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package scanner

import (
	"io/fs"
	"os"
)

// readDirEntries lists dir's direct entries. Broken out as its own
// function so a future fs.FS-backed scan can swap this for fs.ReadDir.
func readDirEntries(dir string) ([]os.DirEntry, error) {
	return os.ReadDir(dir)
}

// statFollow stats path, following symlinks.
func statFollow(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
