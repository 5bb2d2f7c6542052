//go:build !linux

package input

import (
	"os"

	"github.com/juju/errors"
)

func hidrawInfo(f *os.File) (HidrawInfo, error) {
	return HidrawInfo{}, errors.NotSupportedf("hidraw on this platform")
}
