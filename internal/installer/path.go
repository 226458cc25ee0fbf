package installer

import "strings"

// NeedsAddPath reports whether entry is missing from the ';'-separated
// PATH value. It matches whole entries only, case-sensitively, exactly as
// the generated NeedsAddPath Pascal function does.
func NeedsAddPath(origPath, entry string) bool {
	return !strings.Contains(";"+origPath+";", ";"+entry+";")
}

// RemovePathEntry removes the first whole-entry occurrence of entry from
// origPath, the way the generated uninstall code does. origPath is returned
// unchanged when entry is not present.
func RemovePathEntry(origPath, entry string) string {
	padded := ";" + origPath + ";"
	i := strings.Index(padded, ";"+entry+";")
	if i < 0 {
		return origPath
	}
	padded = padded[:i] + padded[i+len(entry)+1:]
	if len(padded) < 2 {
		return ""
	}
	return padded[1 : len(padded)-1]
}
