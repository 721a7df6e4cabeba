package vault

import (
	"errors"
	"fmt"
)

// ErrFolderExists is returned by CreateFolder when the folder is already there.
var ErrFolderExists = errors.New("folder already exists")

// AlreadyExistsError reports that CreateFile lost a race: something was
// created at Path between lookup and creation.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("file already exists: %s", e.Path)
}
