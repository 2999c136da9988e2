// Package version describes the shardvote build the running binary comes from.
package version

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Set through linker options. Placeholders in braces are filled at release time.
var (
	gitCommit = "Local build"
	buildDate = "Moments ago"
	gitTag    = "Unknown"
)

// Info identifies a build.
type Info struct {
	Tag       string
	Commit    string
	BuildDate string
}

// Build returns the info of the running binary, resolving release placeholders when the
// linker left them unset.
func Build() Info {
	info := Info{Tag: gitTag, Commit: gitCommit, BuildDate: buildDate}
	if info.BuildDate == "{DATE}" {
		info.BuildDate = time.Now().Format(time.RFC3339)
	}
	if info.Commit == "{STABLE_GIT_COMMIT}" {
		commit, err := exec.Command("git", "rev-parse", "HEAD").Output()
		if err != nil {
			logrus.WithError(err).Debug("Could not read git commit")
		} else {
			info.Commit = strings.TrimRight(string(commit), "\r\n")
		}
	}
	return info
}

// String formats the build as Shardvote/<tag>/<commit>.
func (i Info) String() string {
	return fmt.Sprintf("Shardvote/%s/%s", i.Tag, i.Commit)
}

// Fields returns the build as log fields.
func (i Info) Fields() logrus.Fields {
	return logrus.Fields{
		"version": i.Tag,
		"commit":  i.Commit,
		"built":   i.BuildDate,
	}
}

// GetVersion returns the version string of this build.
func GetVersion() string {
	info := Build()
	return fmt.Sprintf("%s. Built at: %s", info, info.BuildDate)
}
