//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package market

import (
	"os"

	"golang.org/x/sys/unix"
)

// 建议锁（flock），只约束同样使用 flock 的进程，例如 feed 写入方。
func lockShared(f *os.File) error    { return flock(f, unix.LOCK_SH) }
func lockExclusive(f *os.File) error { return flock(f, unix.LOCK_EX) }
func unlock(f *os.File) error        { return flock(f, unix.LOCK_UN) }

func flock(f *os.File, how int) error {
	for {
		err := unix.Flock(int(f.Fd()), how)
		if err != unix.EINTR {
			return err
		}
	}
}
