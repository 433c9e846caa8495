/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package build

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set by -ldflags "-X github.com/radondb/shardcore/build.tag=...".
var (
	tag  = "unknown"
	git  string
	time string
)

// Info tuple.
type Info struct {
	Tag       string
	Time      string
	Git       string
	GoVersion string
	Platform  string
}

// GetInfo returns the info. Without ldflags the git revision and time come
// from the vcs stamp of the binary, if any.
func GetInfo() Info {
	info := Info{
		Tag:       "shardcore-" + tag,
		Time:      time,
		Git:       git,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Git == "":
				info.Git = s.Value
			case s.Key == "vcs.time" && info.Time == "":
				info.Time = s.Value
			}
		}
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("%s git:%s time:%s go:%s platform:%s", i.Tag, i.Git, i.Time, i.GoVersion, i.Platform)
}
