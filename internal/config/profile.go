package config

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Profile carries the validity defaults of a target file system. Values can
// be overridden individually by config file or CLI flags.
type Profile struct {
	Name           string
	CharacterClass string // regexp character-class body of invalid characters
	ForbiddenNames []string
	MaxPathLength  int
	MaxNameLength  int
	CaseSensitive  bool
}

// Windows reserves device names regardless of extension.
var windowsReservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

var profiles = map[string]Profile{
	"ntfs-win32": {
		Name:           "ntfs-win32",
		CharacterClass: `<>:"/\\|?*`,
		ForbiddenNames: windowsReservedNames,
		MaxPathLength:  255,
		MaxNameLength:  255,
		CaseSensitive:  false,
	},
	"ntfs-posix": {
		Name:           "ntfs-posix",
		CharacterClass: `<>:"/\\|?*`,
		ForbiddenNames: windowsReservedNames,
		MaxPathLength:  4096,
		MaxNameLength:  255,
		CaseSensitive:  true,
	},
	"ext4": {
		Name:           "ext4",
		CharacterClass: `\x00/`,
		MaxPathLength:  4096,
		MaxNameLength:  255,
		CaseSensitive:  true,
	},
}

// ProfileByName returns the named profile, resolving "" or "auto" from the
// file system the path lives on.
func ProfileByName(name, path string) (Profile, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return detectProfile(path), nil
	case "ntfs":
		return profiles["ntfs-win32"], nil
	}
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, &RuleConfigError{Field: "filesystem", Reason: "unknown file system " + name}
	}
	return p, nil
}

// ProfileNames lists the selectable file-system profiles.
func ProfileNames() []string {
	return []string{"auto", "ntfs-win32", "ntfs-posix", "ext4"}
}

// detectProfile inspects the mount table for the file system holding path.
// Unknown or undetectable file systems fall back to ext4 semantics (the
// most permissive profile), or ntfs-win32 on Windows.
func detectProfile(path string) Profile {
	if runtime.GOOS == "windows" {
		return profiles["ntfs-win32"]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return profiles["ext4"]
	}
	if fstype := mountType(abs); fstype != "" {
		switch fstype {
		case "ntfs", "ntfs3", "fuseblk":
			return profiles["ntfs-posix"]
		}
	}
	return profiles["ext4"]
}

// mountType returns the fstype of the longest mount-point prefix of abs,
// read from /proc/self/mounts. Empty on any failure.
func mountType(abs string) string {
	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		return ""
	}
	defer f.Close()

	best, bestType := "", ""
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		mount, fstype := fields[1], fields[2]
		if mount == abs || strings.HasPrefix(abs, strings.TrimSuffix(mount, "/")+"/") || mount == "/" {
			if len(mount) > len(best) {
				best, bestType = mount, fstype
			}
		}
	}
	return bestType
}
