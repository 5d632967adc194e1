package version

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit string

	// Version is the built softwares version.
	Version = ICS07SemVer
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit
	}
}

const (
	// ICS07SemVer is the semantic version of the ics07 tool.
	// Must be a string because scripts like dist.sh read this file.
	ICS07SemVer = "0.1.0"

	// IBCClientVersion is the proto package of the light client messages
	// the tool encodes.
	IBCClientVersion = "ibc.lightclients.tendermint.v1"
)
