package domain

// Submodule represents one entry of a repository's submodule list
type Submodule struct {
	Path    string
	ShortID string // abbreviated commit id, "" if unknown
	FullID  string // full commit id, "" if unknown
	URL     string // "" if not configured
	Status  SubmoduleStatus
}

// SubmoduleStatus represents the state of a submodule's working tree
type SubmoduleStatus int

const (
	StatusUnknown SubmoduleStatus = iota
	StatusUninitialized
	StatusInSync
	StatusModified
	StatusMergeConflict
)

// String returns the display form of the status
func (s SubmoduleStatus) String() string {
	switch s {
	case StatusUninitialized:
		return "Uninitialized"
	case StatusInSync:
		return "InSync"
	case StatusModified:
		return "Modified"
	case StatusMergeConflict:
		return "MergeConflict"
	default:
		return "Unknown"
	}
}

// ParseSubmoduleStatus maps the prefix character of `git submodule status`
func ParseSubmoduleStatus(prefix byte) SubmoduleStatus {
	switch prefix {
	case '-':
		return StatusUninitialized
	case ' ':
		return StatusInSync
	case '+':
		return StatusModified
	case 'U':
		return StatusMergeConflict
	default:
		return StatusUnknown
	}
}
