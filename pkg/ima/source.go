package ima

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// OpenLog opens a measurement list on fs. The securityfs file is readable
// by root only, so a permission failure is reported as such.
func OpenLog(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.Wrapf(err, "%s is not readable, run as root", path)
		}
		return nil, errors.Wrap(err, "Failed opening measurement list")
	}
	return f, nil
}
