package platform

import (
	"os"
	"syscall"
	"time"
)

// creationTime uses the inode change time, the closest linux exposes through stat
func creationTime(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
