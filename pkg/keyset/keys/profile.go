package keys

import (
	"strings"

	"github.com/diwise/record-translator/pkg/keyset/errors"
)

// Profile names the naming convention used by a source of keyed data
type Profile string

const (
	Local    Profile = "local"
	Remote   Profile = "remote"
	Database Profile = "database"
)

var knownProfiles = []Profile{Database, Local, Remote}

func (p Profile) String() string {
	return string(p)
}

func (p Profile) Valid() bool {
	for _, known := range knownProfiles {
		if p == known {
			return true
		}
	}
	return false
}

// Profiles returns all known source profiles in lexical order
func Profiles() []Profile {
	profiles := make([]Profile, len(knownProfiles))
	copy(profiles, knownProfiles)
	return profiles
}

func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.NewUnknownProfileError(s)
	}
	return p, nil
}
