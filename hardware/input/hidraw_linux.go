package input

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// _IOR('H', 0x03, struct hidraw_devinfo)
const hidiocgrawinfo = 0x80084803

type hidrawDevinfo struct {
	bustype uint32
	vendor  int16
	product int16
}

func hidrawInfo(f *os.File) (HidrawInfo, error) {
	var di hidrawDevinfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), hidiocgrawinfo, uintptr(unsafe.Pointer(&di)))
	if errno != 0 {
		return HidrawInfo{}, errno
	}
	return HidrawInfo{Bus: di.bustype, Vendor: uint16(di.vendor), Product: uint16(di.product)}, nil
}
