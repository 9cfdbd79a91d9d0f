package gtlang

import "runtime/debug"

// Application identity.
const (
	Name          = "gtlang"
	Description   = "GregTech language file generator"
	RepositoryURL = "https://github.com/ZaguanLabs/gtlang"
	License       = "MIT"
)

// Build information. Release builds set these with
//
//	go build -ldflags "-X github.com/ZaguanLabs/gtlang.Version=1.0.0 -X github.com/ZaguanLabs/gtlang.GitCommit=$(git rev-parse HEAD)"
//
// Values left unset are filled from the module build info where available.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if GoVersion == "unknown" {
		GoVersion = info.GoVersion
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if GitCommit == "unknown" {
				GitCommit = s.Value
			}
		case "vcs.time":
			if BuildDate == "unknown" {
				BuildDate = s.Value
			}
		}
	}
}

// FullVersion returns Version with the short commit appended, e.g.
// "0.1.0+1a2b3c4".
func FullVersion() string {
	if GitCommit == "unknown" || GitCommit == "" {
		return Version
	}
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + "+" + short
}

// UserAgent is sent with provider requests.
func UserAgent() string {
	return Name + "/" + Version
}
