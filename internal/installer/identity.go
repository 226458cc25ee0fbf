// Package installer compiles a build configuration into an Inno Setup
// script and manages the installer's AppId.
package installer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gersonkurz/pybuilder/internal/config"
)

// Persister stores a record, typically by encoding it into the project's
// config file.
type Persister interface {
	Save(r *config.Record) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(r *config.Record) error

func (f PersisterFunc) Save(r *config.Record) error { return f(r) }

// NewAppID returns a fresh identity token: an uppercase hyphenated UUID
// without braces.
func NewAppID() string {
	return strings.ToUpper(uuid.New().String())
}

// EnsureIdentity makes sure the record carries an AppId. An existing one is
// normalized and kept. A missing one is generated and saved through p
// before EnsureIdentity returns; if saving fails the record is left as it
// was.
func EnsureIdentity(r *config.Record, p Persister) (token string, created bool, err error) {
	if id := config.NormalizeAppID(r.InstallerAppID); id != "" {
		r.InstallerAppID = id
		return id, false, nil
	}

	token = NewAppID()
	previous := r.InstallerAppID
	r.InstallerAppID = token
	if err := p.Save(r); err != nil {
		r.InstallerAppID = previous
		return "", false, fmt.Errorf("persisting installer AppId: %w", err)
	}
	return token, true, nil
}
