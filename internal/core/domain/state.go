package domain

// DesiredState is the resolved target configuration for one mount.
type DesiredState struct {
	MountPoint string
	Values     map[string]any
}

// Keys returns the remote keys present in the desired state.
func (d DesiredState) Keys() []string {
	keys := make([]string, 0, len(d.Values))
	for k := range d.Values {
		keys = append(keys, k)
	}
	return keys
}

// CurrentState is the configuration stored remotely. Empty means the remote
// resource does not exist yet.
type CurrentState map[string]any
